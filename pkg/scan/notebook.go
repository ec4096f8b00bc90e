package scan

import (
	"encoding/json"
	"strings"
)

// notebook is the minimal slice of the Jupyter notebook format needed to
// pull out code cells.
type notebook struct {
	Cells []cell `json:"cells"`
}

type cell struct {
	CellType string     `json:"cell_type"`
	Source   cellSource `json:"source"`
}

// cellSource accepts both notebook source encodings: a single string or a
// list of line strings.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = cellSource(str)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = cellSource(strings.Join(lines, ""))
	return nil
}

// notebookCode extracts the concatenated code-cell source from raw
// notebook JSON. Markdown and raw cells are ignored.
func notebookCode(data []byte) (string, error) {
	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", err
	}

	var cells []string
	for _, c := range nb.Cells {
		if c.CellType == "code" {
			cells = append(cells, string(c.Source))
		}
	}
	return strings.Join(cells, "\n"), nil
}
