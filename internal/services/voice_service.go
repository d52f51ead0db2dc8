package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/averahq/avera/internal/models"
)

const voiceTextMaxLength = 5000

var (
	ErrVoiceTextRequired = errors.New("voice text required")
	ErrVoiceTextTooLong  = errors.New("voice text too long")
	ErrVoiceAudioInvalid = errors.New("voice audio invalid")
)

// VoiceSynthesizer turns an assistant reply into base64 audio.
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, text string, gender string, personality string) (string, error)
}

// VoiceTranscriber turns base64 audio from the browser into text.
type VoiceTranscriber interface {
	Transcribe(ctx context.Context, audioBase64 string) (string, error)
}

// ElevenLabs voice per gender and personality; the fallback voice is
// the female romantic_soft entry.
var voiceIDs = map[string]map[string]string{
	models.GenderFemale: {
		models.PersonalityRomanticSoft:     "9BWtsMINqrJLrRacOk9x",
		models.PersonalityFlirtyPlayful:    "EXAVITQu4vr4xnSDxMaL",
		models.PersonalitySupportiveCaring: "pFZP5JQG7iQjIQuC4Bku",
		models.PersonalityBoldPassionate:   "cgSgspJ2msm6clMCkdW9",
		models.PersonalityChaosFun:         "XB0fDUnXU5powFXDhCwa",
	},
	models.GenderMale: {
		models.PersonalityRomanticSoft:     "TX3LPaxmHKxFdv7VOQHJ",
		models.PersonalityFlirtyPlayful:    "CwhRBWXzGAHq8TQ4Fs17",
		models.PersonalitySupportiveCaring: "onwK4e9ZLuTAKqWW03F9",
		models.PersonalityBoldPassionate:   "pqHfZKP75CvOlQylNhV4",
		models.PersonalityChaosFun:         "IKne3meq5aSn9XLyUdCD",
	},
	models.GenderNonBinary: {
		models.PersonalityRomanticSoft:     "SAz9YHcvj6GT2YYXdXww",
		models.PersonalityFlirtyPlayful:    "N2lVS1w4EtoT3dr4eOWO",
		models.PersonalitySupportiveCaring: "JBFqnCBsd6RMkjVDRZzb",
		models.PersonalityBoldPassionate:   "bIHbv24MWmeRgasZH58o",
		models.PersonalityChaosFun:         "nPczCjzI2devNBz1zQrb",
	},
}

// VoiceIDFor picks the ElevenLabs voice for a partner.
func VoiceIDFor(gender string, personality string) string {
	byPersonality, known := voiceIDs[gender]
	if !known {
		byPersonality = voiceIDs[models.GenderFemale]
	}
	if voiceID, known := byPersonality[personality]; known {
		return voiceID
	}
	return voiceIDs[models.GenderFemale][models.PersonalityRomanticSoft]
}

// ElevenLabsVoiceService covers both directions of the voice surface:
// TTS for assistant replies and STT for recorded user messages.
type ElevenLabsVoiceService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker
}

func NewElevenLabsVoiceService(httpClient *http.Client, baseURL string, apiKey string, breaker *gobreaker.CircuitBreaker) *ElevenLabsVoiceService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &ElevenLabsVoiceService{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		breaker:    breaker,
	}
}

func (service *ElevenLabsVoiceService) Synthesize(ctx context.Context, text string, gender string, personality string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrVoiceTextRequired
	}
	if len(trimmed) > voiceTextMaxLength {
		return "", ErrVoiceTextTooLong
	}

	call := func() (interface{}, error) {
		body, err := json.Marshal(map[string]any{
			"text":     trimmed,
			"model_id": "eleven_multilingual_v2",
			"voice_settings": map[string]any{
				"stability":        0.5,
				"similarity_boost": 0.75,
			},
		})
		if err != nil {
			return nil, err
		}

		endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", service.baseURL, VoiceIDFor(gender, personality))
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("xi-api-key", service.apiKey)

		response, err := service.httpClient.Do(request)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("text-to-speech request failed with status %d", response.StatusCode)
		}

		audio, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, err
		}
		return base64.StdEncoding.EncodeToString(audio), nil
	}

	result, err := service.execute(call)
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (service *ElevenLabsVoiceService) Transcribe(ctx context.Context, audioBase64 string) (string, error) {
	audio, err := base64.StdEncoding.DecodeString(strings.TrimSpace(audioBase64))
	if err != nil || len(audio) == 0 {
		return "", ErrVoiceAudioInvalid
	}

	call := func() (interface{}, error) {
		var form bytes.Buffer
		writer := multipart.NewWriter(&form)
		if err := writer.WriteField("model_id", "scribe_v1"); err != nil {
			return nil, err
		}
		filePart, err := writer.CreateFormFile("file", "recording.webm")
		if err != nil {
			return nil, err
		}
		if _, err := filePart.Write(audio); err != nil {
			return nil, err
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}

		endpoint := service.baseURL + "/v1/speech-to-text"
		request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &form)
		if err != nil {
			return nil, err
		}
		request.Header.Set("Content-Type", writer.FormDataContentType())
		request.Header.Set("xi-api-key", service.apiKey)

		response, err := service.httpClient.Do(request)
		if err != nil {
			return nil, err
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("speech-to-text request failed with status %d", response.StatusCode)
		}

		payload := struct {
			Text string `json:"text"`
		}{}
		if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return strings.TrimSpace(payload.Text), nil
	}

	result, err := service.execute(call)
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (service *ElevenLabsVoiceService) execute(call func() (interface{}, error)) (interface{}, error) {
	if service.breaker == nil {
		return call()
	}
	return service.breaker.Execute(call)
}
