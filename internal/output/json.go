package output

import (
	"encoding/json"
	"io"

	"erbsmith/internal/engine"
)

// JSONFormatter renders results as a JSON array, one object per file.
type JSONFormatter struct{}

type jsonFile struct {
	File       string        `json:"file"`
	Ignored    bool          `json:"ignored"`
	Offenses   []jsonOffense `json:"offenses"`
	Suppressed int           `json:"suppressed"`
}

type jsonOffense struct {
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	Fixable   bool   `json:"fixable"`
	Safe      bool   `json:"safeFix,omitempty"`
}

// Format writes results as a pretty-printed JSON array. No results
// produce [].
func (f *JSONFormatter) Format(w io.Writer, results []*engine.Result) error {
	files := make([]jsonFile, 0, len(results))
	for _, res := range results {
		jf := jsonFile{
			File:       res.Path,
			Ignored:    res.Ignored,
			Offenses:   make([]jsonOffense, 0, len(res.Offenses)),
			Suppressed: len(res.Suppressed),
		}
		for _, o := range res.Offenses {
			jf.Offenses = append(jf.Offenses, jsonOffense{
				Rule:      o.Rule,
				Severity:  o.Severity.String(),
				Message:   o.Message,
				Line:      o.Location.Start.Line,
				Column:    o.Location.Start.Column,
				EndLine:   o.Location.End.Line,
				EndColumn: o.Location.End.Column,
				Fixable:   o.Fix != nil,
				Safe:      o.Fix != nil && o.Fix.Safe,
			})
		}
		files = append(files, jf)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(files)
}
