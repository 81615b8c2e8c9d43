package service

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"physique-coach/internal/store"
)

// ProfileDoc is the wire and file form of an athlete profile, with dates as
// YYYY-MM-DD strings.
type ProfileDoc struct {
	store.AthleteProfile `yaml:",inline"`
	BirthDate            string `json:"birth_date" yaml:"birth_date"`
	CompetitionDate      string `json:"competition_date,omitempty" yaml:"competition_date"`
}

// MeasurementDoc is the wire and file form of a measurement
type MeasurementDoc struct {
	store.Measurement `yaml:",inline"`
	Date              string `json:"date" yaml:"date"`
}

// ImportDoc is a YAML file with an optional profile and any number of measurements
type ImportDoc struct {
	Profile      *ProfileDoc      `yaml:"profile"`
	Measurements []MeasurementDoc `yaml:"measurements"`
}

// ToProfile parses the date fields into a store profile
func (d ProfileDoc) ToProfile() (store.AthleteProfile, error) {
	p := d.AthleteProfile
	birth, err := time.Parse(store.DateLayout, d.BirthDate)
	if err != nil {
		return p, fmt.Errorf("%w: birth_date %q", ErrValidation, d.BirthDate)
	}
	p.BirthDate = birth

	p.CompetitionDate = nil
	if d.CompetitionDate != "" {
		comp, err := time.Parse(store.DateLayout, d.CompetitionDate)
		if err != nil {
			return p, fmt.Errorf("%w: competition_date %q", ErrValidation, d.CompetitionDate)
		}
		p.CompetitionDate = &comp
	}
	return p, nil
}

// NewProfileDoc formats a store profile for output
func NewProfileDoc(p store.AthleteProfile) ProfileDoc {
	doc := ProfileDoc{AthleteProfile: p, BirthDate: p.BirthDate.Format(store.DateLayout)}
	if p.CompetitionDate != nil {
		doc.CompetitionDate = p.CompetitionDate.Format(store.DateLayout)
	}
	return doc
}

// ToMeasurement parses the date into a store measurement for athleteID
func (d MeasurementDoc) ToMeasurement(athleteID string) (store.Measurement, error) {
	m := d.Measurement
	date, err := time.Parse(store.DateLayout, d.Date)
	if err != nil {
		return m, fmt.Errorf("%w: date %q", ErrValidation, d.Date)
	}
	m.AthleteID = athleteID
	m.Date = date
	return m, nil
}

// NewMeasurementDoc formats a store measurement for output
func NewMeasurementDoc(m store.Measurement) MeasurementDoc {
	return MeasurementDoc{Measurement: m, Date: m.Date.Format(store.DateLayout)}
}

// DecodeImport reads an ImportDoc from YAML
func DecodeImport(r io.Reader) (*ImportDoc, error) {
	var doc ImportDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding import file: %w", err)
	}
	return &doc, nil
}
