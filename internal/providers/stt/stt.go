package stt

import "context"

type Provider interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (text string, err error)
	Close() error
}
