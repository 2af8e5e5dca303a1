package audio

import (
	"context"
	"mime/multipart"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

type ITranscriber interface {
	TranscribeFile(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type transcriptionService struct {
	client *openai.Client
}

func NewTranscriptionService() ITranscriber {
	client := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
	return &transcriptionService{client: client}
}

func (t *transcriptionService) TranscribeFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: file.Filename,
		Reader:   src,
		Language: "en",
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
