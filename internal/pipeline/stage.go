// Package pipeline runs the staged content-generation pipeline: a strictly
// sequential handoff of an accumulating JSON document through six prompt
// stages, from brief interpretation to QA review.
package pipeline

import (
	_ "embed"
	"fmt"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

//go:embed stages.yaml
var stagesYAML []byte

// Stage IDs, in execution order.
const (
	StageBriefInterpreter  = "brief-interpreter"
	StageResearchCollector = "research-collector"
	StageOutlineArchitect  = "outline-architect"
	StageDraftWriter       = "draft-writer"
	StageVoiceHarmonizer   = "voice-harmonizer"
	StageQAReviewer        = "qa-reviewer"
)

// Stage is one step of the pipeline: one prompt template, one LLM call, one
// document key the reply lands on.
type Stage struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Prompt string `yaml:"prompt" json:"prompt"`
	Key    string `yaml:"key" json:"key,omitempty"`
}

type manifest struct {
	Stages []Stage `yaml:"stages"`
}

var (
	stagesOnce sync.Once
	stagesList []Stage
	stagesErr  error
)

// Stages returns the stage table parsed from the embedded manifest.
func Stages() ([]Stage, error) {
	stagesOnce.Do(func() {
		var m manifest
		if err := yaml.Unmarshal(stagesYAML, &m); err != nil {
			stagesErr = fmt.Errorf("parse stage manifest: %w", err)
			return
		}
		if len(m.Stages) == 0 {
			stagesErr = fmt.Errorf("stage manifest is empty")
			return
		}
		stagesList = m.Stages
	})
	return stagesList, stagesErr
}

// StageByID looks up a stage; the bool reports whether it exists.
func StageByID(id string) (Stage, bool) {
	stages, err := Stages()
	if err != nil {
		return Stage{}, false
	}
	for _, st := range stages {
		if st.ID == id {
			return st, true
		}
	}
	return Stage{}, false
}
