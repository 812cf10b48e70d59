// Package setting contains the AiSettings entity holding the prompt
// configuration for the four DCF analysis agents.
package setting

import (
	"fmt"
	"time"
)

// AiSettings is a prompt configuration row. One row is treated as the
// active settings; rows are updated in place, never created or deleted
// through the exposed contract.
type AiSettings struct {
	id           uint
	name         string
	key          string
	promptAgent1 string
	promptAgent2 string
	promptAgent3 string
	promptAgent4 string
	createdAt    time.Time
	updatedAt    time.Time
}

func ReconstructAiSettings(id uint, name, key, prompt1, prompt2, prompt3, prompt4 string, createdAt, updatedAt time.Time) (*AiSettings, error) {
	if id == 0 {
		return nil, fmt.Errorf("settings ID cannot be zero")
	}

	return &AiSettings{
		id:           id,
		name:         name,
		key:          key,
		promptAgent1: prompt1,
		promptAgent2: prompt2,
		promptAgent3: prompt3,
		promptAgent4: prompt4,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (s *AiSettings) ID() uint {
	return s.id
}

func (s *AiSettings) Name() string {
	return s.name
}

func (s *AiSettings) Key() string {
	return s.key
}

func (s *AiSettings) PromptAgent1() string {
	return s.promptAgent1
}

func (s *AiSettings) PromptAgent2() string {
	return s.promptAgent2
}

func (s *AiSettings) PromptAgent3() string {
	return s.promptAgent3
}

func (s *AiSettings) PromptAgent4() string {
	return s.promptAgent4
}

func (s *AiSettings) CreatedAt() time.Time {
	return s.createdAt
}

func (s *AiSettings) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *AiSettings) UpdateKey(key string) {
	s.key = key
	s.updatedAt = time.Now()
}

func (s *AiSettings) UpdatePromptAgent1(prompt string) {
	s.promptAgent1 = prompt
	s.updatedAt = time.Now()
}

func (s *AiSettings) UpdatePromptAgent2(prompt string) {
	s.promptAgent2 = prompt
	s.updatedAt = time.Now()
}

func (s *AiSettings) UpdatePromptAgent3(prompt string) {
	s.promptAgent3 = prompt
	s.updatedAt = time.Now()
}

func (s *AiSettings) UpdatePromptAgent4(prompt string) {
	s.promptAgent4 = prompt
	s.updatedAt = time.Now()
}
