package setting

import (
	"time"

	domainSetting "dcfagents/internal/domain/setting"
)

// UpdateSettingsRequest patches the stored AI agent prompts. Only non-nil
// fields are applied.
type UpdateSettingsRequest struct {
	Key          *string `json:"key"`
	PromptAgent1 *string `json:"prompt_agent1"`
	PromptAgent2 *string `json:"prompt_agent2"`
	PromptAgent3 *string `json:"prompt_agent3"`
	PromptAgent4 *string `json:"prompt_agent4"`
}

type SettingsResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	PromptAgent1 string    `json:"prompt_agent1"`
	PromptAgent2 string    `json:"prompt_agent2"`
	PromptAgent3 string    `json:"prompt_agent3"`
	PromptAgent4 string    `json:"prompt_agent4"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toSettingsResponse(s *domainSetting.AiSettings) *SettingsResponse {
	return &SettingsResponse{
		ID:           s.ID(),
		Name:         s.Name(),
		Key:          s.Key(),
		PromptAgent1: s.PromptAgent1(),
		PromptAgent2: s.PromptAgent2(),
		PromptAgent3: s.PromptAgent3(),
		PromptAgent4: s.PromptAgent4(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func toSettingsResponses(settings []*domainSetting.AiSettings) []*SettingsResponse {
	responses := make([]*SettingsResponse, 0, len(settings))
	for _, s := range settings {
		responses = append(responses, toSettingsResponse(s))
	}
	return responses
}
