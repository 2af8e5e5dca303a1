package voiceService

import (
	"AssistantGolang/internal/api/voice"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"AssistantGolang/pkg/nlp"
	"mime/multipart"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var examplePhrasings = []string{
	"Create a task for John to review the report due tomorrow",
	"What tasks do I have today",
	"Mark task 42 as completed",
	"Schedule a meeting with Sarah tomorrow at 3pm",
	"Send an email to Mike about the budget",
}

// ProcessCommand runs one utterance through the full pipeline:
// classification, slot resolution, the disambiguation gate, and a single
// dispatch. Each call is stateless; a clarification just means the client
// sends a richer utterance next time.
func (s *voiceService) ProcessCommand(ctx context.Context, user entity.UserLoginData, req voice.CommandRequest) (*voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	allowed, err := s.redis.AllowVoiceCommand(ctx, user.ID)
	if err != nil {
		// Quota tracking is advisory; a broken counter should not take the
		// feature down.
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Voice command quota check failed, allowing request")
	} else if !allowed {
		return nil, voice.ErrTooManyCommands
	}

	u := nlp.NewUtterance(req.Text)
	intent := nlp.Classify(u)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
		"intent":     intent,
	}).Info("Voice command classified")

	switch intent {
	case nlp.IntentRecognizedUnclear:
		return &voice.CommandResponse{
			Status:     http.StatusOK,
			Message:    "I can help with tasks, meetings and email, but I didn't quite get that. Try \"Create a task for John\" or \"What tasks do I have today\".",
			Recognized: true,
			Incomplete: true,
		}, nil
	case nlp.IntentUnrecognized:
		return s.smallTalk(ctx, req.Text)
	}

	res, err := s.resolve(ctx, user.ID, intent, u)
	if err != nil {
		return nil, err
	}

	switch res.outcome {
	case outcomeClarify:
		return &voice.CommandResponse{
			Status:     http.StatusOK,
			Message:    res.prompt,
			Recognized: true,
			Incomplete: true,
			Intent:     string(intent),
		}, nil
	case outcomeNotFound:
		return &voice.CommandResponse{
			Status:         http.StatusNotFound,
			Error:          res.reason,
			Intent:         string(intent),
			AvailableUsers: res.availableUsers,
		}, nil
	case outcomeUnauthorized:
		return &voice.CommandResponse{
			Status: http.StatusForbidden,
			Error:  res.reason,
			Intent: string(intent),
		}, nil
	}

	return s.dispatch(ctx, user, intent, res)
}

// smallTalk hands utterances with no task-domain vocabulary to the
// conversational model so the assistant stays friendly instead of erroring
// on greetings.
func (s *voiceService) smallTalk(ctx context.Context, text string) (*voice.CommandResponse, error) {
	reply, err := s.gemini.GenerateReply(ctx, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Conversational fallback failed")

		return &voice.CommandResponse{
			Status:   http.StatusBadRequest,
			Error:    "I didn't understand that. Here are some things you can say.",
			Examples: examplePhrasings,
		}, nil
	}

	return &voice.CommandResponse{
		Status:  http.StatusOK,
		Message: reply,
	}, nil
}

// Transcribe converts an uploaded audio recording to text. The raw file is
// archived to object storage best-effort before transcription.
func (s *voiceService) Transcribe(ctx context.Context, userID string, file *multipart.FileHeader) (*voice.TranscribeResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateAudioFile(file); err != nil {
		return nil, err
	}

	var audioLink string
	if link, err := s.s3.UploadFile(file); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Audio archive upload failed")
	} else {
		audioLink = link
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"audio_link": link,
		}).Debug("Audio archived")
	}

	text, err := s.transcriber.TranscribeFile(ctx, file)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Audio transcription failed")

		// Only transcribed recordings are worth keeping in the archive.
		if audioLink != "" {
			if delErr := s.s3.DeleteFile(audioLink); delErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      delErr.Error(),
				}).Warn("Failed to remove archived audio")
			}
		}
		return nil, voice.ErrTranscriptionFailed
	}

	res := &voice.TranscribeResponse{Text: text}
	if audioLink != "" {
		if signed, err := s.s3.PresignUrl(audioLink); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Audio link presign failed")
		} else {
			res.AudioURL = signed
		}
	}

	return res, nil
}
