// Package e2e provides end-to-end tests with a large corpus and multiple queries.
package e2e

import (
	"fmt"

	"github.com/hyperjump/aimai/internal/models"
)

// QueryTestCase defines a query and the record ID(s) that must appear in
// search results. At least one of ExpectedIDs must be present.
type QueryTestCase struct {
	Query       string
	Preset      string
	Threshold   float64
	ExpectedIDs []string
	Description string
}

// Corpus holds records and query test cases for E2E tests.
type Corpus struct {
	Records      []models.Record
	TestCases    []QueryTestCase
	TotalRecords int
	TotalQueries int
}

// BuildCorpus returns a corpus of 100 records with varied names and multiple
// query test cases. Each record has a unique name so queries can assert the
// correct record is returned.
func BuildCorpus() *Corpus {
	records := buildRecords(100)
	cases := buildQueryTestCases()
	return &Corpus{
		Records:      records,
		TestCases:    cases,
		TotalRecords: len(records),
		TotalQueries: len(cases),
	}
}

func buildRecords(n int) []models.Record {
	seeds := []struct {
		name  string
		email string
	}{
		{"Jonathan Smith", "jonathan.smith@gmail.com"},
		{"Jane Doering", "jane.doering@example.org"},
		{"Michael Brown", "michael.brown@example.org"},
		{"Elizabeth Garcia", "elizabeth.garcia@example.org"},
		{"Christopher Wilson", "christopher.wilson@example.org"},
		{"Patricia Martinez", "patricia.martinez@example.org"},
		{"Alexander Johnson", "alexander.johnson@example.org"},
		{"Katherine Davis", "katherine.davis@example.org"},
		{"Benjamin Rodriguez", "benjamin.rodriguez@example.org"},
		{"Margaret Anderson", "margaret.anderson@example.org"},
	}
	records := make([]models.Record, 0, n)
	for i := 0; i < n; i++ {
		seed := seeds[i%len(seeds)]
		name := seed.name
		email := seed.email
		if i >= len(seeds) {
			name = fmt.Sprintf("%s %d", seed.name, i)
			email = fmt.Sprintf("%d.%s", i, seed.email)
		}
		records = append(records, models.Record{
			"id":    fmt.Sprintf("rec-%d", i),
			"name":  name,
			"email": email,
		})
	}
	return records
}

func buildQueryTestCases() []QueryTestCase {
	return []QueryTestCase{
		{
			Query:       "Jonathan Smith",
			ExpectedIDs: []string{"rec-0"},
			Description: "exact name match",
		},
		{
			Query:       "Jonathan Smtih",
			Preset:      "typo",
			ExpectedIDs: []string{"rec-0"},
			Description: "transposed characters",
		},
		{
			Query:       "Michael Brwn",
			Threshold:   0.4,
			ExpectedIDs: []string{"rec-2"},
			Description: "dropped character",
		},
		{
			Query:       "elizabeth.garcia",
			Preset:      "partial",
			Threshold:   0.3,
			ExpectedIDs: []string{"rec-3"},
			Description: "email fragment via local alignment",
		},
		{
			Query:       "Kathrine Davis",
			Preset:      "hybrid",
			ExpectedIDs: []string{"rec-7"},
			Description: "misspelled first name",
		},
		{
			Query:       "benjamin rodrigez",
			Threshold:   0.5,
			ExpectedIDs: []string{"rec-8"},
			Description: "case-insensitive with a missing character",
		},
	}
}
