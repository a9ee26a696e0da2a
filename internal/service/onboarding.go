package service

import "github.com/Abm32/Neuroshift/internal/onboarding"

type OnboardingRequest struct {
	WakeTime        string `json:"wake_time" validate:"required,datetime=15:04"`
	SleepTime       string `json:"sleep_time" validate:"required,datetime=15:04"`
	WorkStartTime   string `json:"work_start_time" validate:"required,datetime=15:04"`
	WorkEndTime     string `json:"work_end_time" validate:"required,datetime=15:04"`
	EnergyLevel     string `json:"energy_level" validate:"required,number"`
	FocusChallenges string `json:"focus_challenges" validate:"omitempty,max=2000"`
}

func ValidateOnboardingRequest(req *OnboardingRequest) error {
	return validate.Struct(req)
}

func (r *OnboardingRequest) ToFormData() onboarding.FormData {
	return onboarding.FormData{
		WakeTime:        r.WakeTime,
		SleepTime:       r.SleepTime,
		WorkStartTime:   r.WorkStartTime,
		WorkEndTime:     r.WorkEndTime,
		EnergyLevel:     r.EnergyLevel,
		FocusChallenges: r.FocusChallenges,
	}
}
