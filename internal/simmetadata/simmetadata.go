package simmetadata

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

type RunMetaData struct {
	SoftwareVersion string    `json:"software_version"`
	RunID           string    `json:"run_id"`
	Floors          int       `json:"floors"`
	Elevators       int       `json:"elevators"`
	Seed            int64     `json:"seed"`
	StartedAt       time.Time `json:"started_at"`
}

func (metaData *RunMetaData) String() string {
	jsonData, err := json.Marshal(metaData)

	if err != nil {
		Log.Error().Msg("Error Serialising RunMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}

// Fleet renders the building shape, e.g. "3 elevators / 20 floors".
func (metaData *RunMetaData) Fleet() string {
	noun := "elevators"
	if metaData.Elevators == 1 {
		noun = "elevator"
	}
	return fmt.Sprintf("%d %s / %d floors", metaData.Elevators, noun, metaData.Floors)
}
