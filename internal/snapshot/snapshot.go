// Package snapshot exports and imports the plan state as JSON or YAML.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/planifica/internal/model"
)

// Version is written into every exported document.
const Version = 1

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// FormatForPath picks a Format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// amount is a money value written as a fixed two-decimal string. It also
// decodes from bare JSON numbers.
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	*a = amount(b)
	return nil
}

func newAmount(d decimal.Decimal) amount {
	return amount(d.StringFixed(2))
}

func (a amount) decimal() decimal.Decimal {
	return model.ParseAmount(string(a))
}

type document struct {
	Version         int         `json:"version" yaml:"version"`
	PlanID          string      `json:"plan_id,omitempty" yaml:"plan_id,omitempty"`
	PerPeriodTarget amount      `json:"per_period_target" yaml:"per_period_target"`
	TotalTarget     amount      `json:"total_target" yaml:"total_target"`
	PeriodCount     int         `json:"period_count" yaml:"period_count"`
	UpdatedAt       *time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Periods         []periodDoc `json:"periods" yaml:"periods"`
}

type periodDoc struct {
	Index       int             `json:"index" yaml:"index"`
	SavedAmount amount          `json:"saved_amount" yaml:"saved_amount"`
	Evidence    *model.Evidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

func toDocument(s model.PlanState) document {
	doc := document{
		Version:         Version,
		PlanID:          s.PlanID,
		PerPeriodTarget: newAmount(s.PerPeriodTarget),
		TotalTarget:     newAmount(s.TotalTarget),
		PeriodCount:     s.PeriodCount,
		Periods:         make([]periodDoc, 0, len(s.Periods)),
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt.UTC()
		doc.UpdatedAt = &t
	}
	for _, p := range s.Periods {
		doc.Periods = append(doc.Periods, periodDoc{
			Index:       p.Index,
			SavedAmount: newAmount(p.SavedAmount),
			Evidence:    p.Evidence,
		})
	}
	return doc
}

func (d document) state() model.PlanState {
	s := model.PlanState{
		PlanID:          d.PlanID,
		PerPeriodTarget: model.NonNegative(d.PerPeriodTarget.decimal()),
		TotalTarget:     model.NonNegative(d.TotalTarget.decimal()),
		PeriodCount:     d.PeriodCount,
		Periods:         make([]model.Period, 0, len(d.Periods)),
	}
	if d.UpdatedAt != nil {
		s.UpdatedAt = *d.UpdatedAt
	}
	for _, p := range d.Periods {
		s.Periods = append(s.Periods, model.Period{
			Index:       p.Index,
			SavedAmount: p.SavedAmount.decimal(),
			Evidence:    p.Evidence,
		})
	}
	return s
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s model.PlanState, f Format) error {
	doc := toDocument(s)
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// Decode reads a snapshot in format f. The result is not normalized; callers
// pass it through the planner before use.
func Decode(r io.Reader, f Format) (model.PlanState, error) {
	var doc document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return model.PlanState{}, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return model.PlanState{}, fmt.Errorf("decoding json: %w", err)
		}
	}
	if doc.Version > Version {
		return model.PlanState{}, fmt.Errorf("snapshot version %d is newer than supported %d", doc.Version, Version)
	}
	return doc.state(), nil
}
