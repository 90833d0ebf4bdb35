package simmetadata

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	metadata := RunMetaData{
		SoftwareVersion: "smj2acjkvv4h1zkwjz2ocsn2lkfrjmzf9qn4i2m3",
		RunID:           "uwvvblrtct",
		Floors:          20,
		Elevators:       3,
		Seed:            7,
		StartedAt:       time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	jsonString := "{\"software_version\":\"smj2acjkvv4h1zkwjz2ocsn2lkfrjmzf9qn4i2m3\",\"run_id\":\"uwvvblrtct\",\"floors\":20,\"elevators\":3,\"seed\":7,\"started_at\":\"2025-03-01T12:00:00Z\"}"

	if metadata.String() != jsonString {
		t.Errorf("String() = %s, expected %s", metadata.String(), jsonString)
	}
}

func TestFleet(t *testing.T) {
	cases := []struct {
		metadata RunMetaData
		expected string
	}{
		{RunMetaData{Floors: 20, Elevators: 3}, "3 elevators / 20 floors"},
		{RunMetaData{Floors: 5, Elevators: 1}, "1 elevator / 5 floors"},
	}

	for _, tc := range cases {
		if tc.metadata.Fleet() != tc.expected {
			t.Errorf("Fleet() = %s, expected %s", tc.metadata.Fleet(), tc.expected)
		}
	}
}
