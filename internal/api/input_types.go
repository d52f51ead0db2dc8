package api

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type resetPasswordInput struct {
	Token       string `json:"token" form:"token"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type onboardingAdvanceInput struct {
	Gender      string `json:"gender" form:"gender"`
	Personality string `json:"personality" form:"personality"`
	Name        string `json:"name" form:"name"`
	Preference  string `json:"preference" form:"preference"`
}

type onboardingCompleteInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type sendMessageInput struct {
	Message        string `json:"message" form:"message"`
	EmotionalMode  string `json:"emotional_mode" form:"emotional_mode"`
	WithVoice      bool   `json:"with_voice" form:"with_voice"`
	IdempotencyKey string `json:"idempotency_key" form:"idempotency_key"`
}

type sendGiftInput struct {
	GiftTypeID     uint   `json:"gift_type_id" form:"gift_type_id"`
	IdempotencyKey string `json:"idempotency_key" form:"idempotency_key"`
}

type transcribeInput struct {
	AudioBase64 string `json:"audio_base64" form:"audio_base64"`
}
