// Package render provides visualization rendering for import frequency data.
//
// # Overview
//
// This package contains the renderers that turn frequency tables into
// visual outputs:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Word clouds (in [cloud] subpackage)
//   - Spiral polar bar charts (in [spiral] subpackage)
//   - Import graphs via Graphviz (in [graphdot] subpackage)
//   - Colormaps and text metrics shared by renderers (in [styles])
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). All renderers emit SVG
// natively and go through these for raster output.
//
//	svg := cloud.Render(freqs, cloud.Options{})
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [cloud]: pyscan/pkg/render/cloud
// [spiral]: pyscan/pkg/render/spiral
// [graphdot]: pyscan/pkg/render/graphdot
// [styles]: pyscan/pkg/render/styles
package render
