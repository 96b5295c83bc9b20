package predictor

import (
	"fmt"
	"slices"
	"strings"
)

// Names of the built-in schemas.
const (
	SchemaKeyBet  = "keybet"
	SchemaClassic = "classic"
	SchemaLegacy  = "legacy"
)

var labels = map[string]string{
	FieldFTHG: "Full Time Home Goals",
	FieldFTAG: "Full Time Away Goals",
	FieldHTHG: "Half Time Home Goals",
	FieldHTAG: "Half Time Away Goals",
	FieldFTR:  "Full Time Result",
	FieldHTR:  "Half Time Result",
	FieldHC:   "Home Corners",
	FieldAC:   "Away Corners",
	FieldHS:   "Home Shots",
	FieldAS:   "Away Shots",
	FieldHST:  "Home Shots on Target",
	FieldAST:  "Away Shots on Target",
	FieldHF:   "Home Fouls",
	FieldAF:   "Away Fouls",
	FieldHY:   "Home Yellow Cards",
	FieldAY:   "Away Yellow Cards",
	FieldHR:   "Home Red Cards",
	FieldAR:   "Away Red Cards",
}

func numeric(name string) Field {
	return Field{Name: name, Key: name, Label: labels[name], Kind: KindNumeric, Required: true}
}

func text(name, key string) Field {
	return Field{Name: name, Key: key, Label: labels[name], Kind: KindText, Required: true}
}

func goals() []Field {
	return []Field{numeric(FieldFTHG), numeric(FieldFTAG), numeric(FieldHTHG), numeric(FieldHTAG)}
}

func shots() []Field {
	return []Field{
		numeric(FieldHC), numeric(FieldAC),
		numeric(FieldHS), numeric(FieldAS),
		numeric(FieldHST), numeric(FieldAST),
	}
}

// KeyBetSchema is the authenticated server that reports results as numbers.
func KeyBetSchema() Schema {
	ftr, htr := numeric(FieldFTR), numeric(FieldHTR)
	ftr.Key, htr.Key = "Winner_numeric", "HTWinner_numeric"

	fields := append(goals(), ftr, htr)
	return Schema{
		Name:         SchemaKeyBet,
		Fields:       append(fields, shots()...),
		RequireLogin: true,
	}
}

// ClassicSchema reports results as H/D/A text under FTR and HTR.
func ClassicSchema() Schema {
	fields := append(goals(), text(FieldFTR, "FTR"), text(FieldHTR, "HTR"))
	return Schema{
		Name:   SchemaClassic,
		Fields: append(fields, shots()...),
	}
}

// LegacySchema is the unauthenticated server with discipline statistics
// and a raw data dump.
func LegacySchema() Schema {
	fields := []Field{text(FieldFTR, "Result"), text(FieldHTR, "HTResult")}
	fields = append(fields, goals()...)
	fields = append(fields,
		numeric(FieldHC), numeric(FieldAC),
		numeric(FieldHF), numeric(FieldAF),
		numeric(FieldHY), numeric(FieldAY),
		numeric(FieldHR), numeric(FieldAR),
	)
	return Schema{
		Name:        SchemaLegacy,
		Fields:      fields,
		ShowRawData: true,
	}
}

// SchemaNames lists the built-in schemas.
func SchemaNames() []string {
	return []string{SchemaKeyBet, SchemaClassic, SchemaLegacy}
}

// SchemaByName returns a built-in schema.
func SchemaByName(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemaKeyBet, "":
		return KeyBetSchema(), nil
	case SchemaClassic:
		return ClassicSchema(), nil
	case SchemaLegacy:
		return LegacySchema(), nil
	}
	return Schema{}, fmt.Errorf("unknown prediction schema %q (available: %s)", name, strings.Join(SchemaNames(), ", "))
}

// WithKeys returns a copy of s reading the given logical fields from other
// wire keys. Logical names are matched case-insensitively.
func (s Schema) WithKeys(overrides map[string]string) (Schema, error) {
	out := s
	out.Fields = slices.Clone(s.Fields)
	for name, key := range overrides {
		i := slices.IndexFunc(out.Fields, func(f Field) bool {
			return strings.EqualFold(f.Name, name)
		})
		if i < 0 {
			return Schema{}, fmt.Errorf("schema %s has no field %q", s.Name, name)
		}
		if key = strings.TrimSpace(key); key == "" {
			return Schema{}, fmt.Errorf("empty wire key for field %s", out.Fields[i].Name)
		}
		out.Fields[i].Key = key
	}
	return out, nil
}

// WithOptional returns a copy of s in which the named fields may be absent
// from a response. The full time goals stay required.
func (s Schema) WithOptional(names []string) (Schema, error) {
	out := s
	out.Fields = slices.Clone(s.Fields)
	for _, name := range names {
		i := slices.IndexFunc(out.Fields, func(f Field) bool {
			return strings.EqualFold(f.Name, strings.TrimSpace(name))
		})
		if i < 0 {
			return Schema{}, fmt.Errorf("schema %s has no field %q", s.Name, name)
		}
		if n := out.Fields[i].Name; n == FieldFTHG || n == FieldFTAG {
			return Schema{}, fmt.Errorf("field %s cannot be optional", n)
		}
		out.Fields[i].Required = false
	}
	return out, nil
}

// Field returns the field with the given logical name.
func (s Schema) Field(name string) (Field, bool) {
	i := slices.IndexFunc(s.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}
