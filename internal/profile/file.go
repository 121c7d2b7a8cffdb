package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iwvelando/lifepath/pkg/constants"
	"github.com/iwvelando/lifepath/pkg/loans"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a profile from a YAML, JSON or TOML file, chosen by
// extension. Derived fields are always recomputed from the inputs, estimating
// loan payments with the given terms, so values written in the file are
// ignored.
func LoadFile(path string, terms LoanTerms) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	p, err := Decode(data, format, terms)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Decode parses a profile in the given format (yaml, yml, json or toml).
func Decode(data []byte, format string, terms LoanTerms) (*Profile, error) {
	var p Profile
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, err
		}
	case "toml":
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported profile format %q", format)
	}

	p.fillDerived(terms)
	return &p, nil
}

// EncodeYAML encodes the profile as YAML with the same keys it is read with.
func (p Profile) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Profile) fillDerived(terms LoanTerms) {
	if p.Dream != nil {
		p.Dream.Derive()
	}
	if p.Path == nil || p.Path.Plan != constants.PlanCollege {
		return
	}
	p.Path.TotalDebt = Float64(loans.TotalDebt(value(p.Path.AnnualTuition), value(p.Path.FinancialAid), p.Path.GetYears()))
	p.Path.EstimatedLoanPayment = Float64(loans.MonthlyPayment(p.Path.GetTotalDebt(), terms.AnnualRate, terms.TermYears))
}
