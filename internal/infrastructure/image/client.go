// Package image 封装外部图像生成服务客户端
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vincent-petithory/dataurl"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"book-weaver-api/internal/config"
	apperrors "book-weaver-api/pkg/errors"
	"book-weaver-api/pkg/metrics"
)

var tracer = otel.Tracer("image")

// Generator 图像生成端口
type Generator interface {
	// GenerateCover 按提示词渲染一张封面图，返回 data URI
	GenerateCover(ctx context.Context, prompt string) (string, error)
}

// Client OpenAI images 风格的图像生成客户端
type Client struct {
	cfg  *config.ImageConfig
	http *http.Client
}

// NewClient 创建图像生成客户端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Image.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		cfg:  &cfg.Image,
		http: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	ResponseFormat string `json:"response_format"`
	OutputFormat   string `json:"output_format,omitempty"`
}

type generateResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateCover 调用图像服务渲染一张 3:4 的 JPEG 封面并编码为 data URI
func (c *Client) GenerateCover(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "image.GenerateCover",
		trace.WithAttributes(attribute.String("image.model", c.cfg.Model)))
	defer span.End()

	start := time.Now()
	uri, err := c.generate(ctx, prompt)
	metrics.ImageCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		metrics.ImageCallTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.ImageCallTotal.WithLabelValues("success").Inc()
	return uri, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	aspect := c.cfg.AspectRatio
	if aspect == "" {
		aspect = "3:4"
	}

	body, err := json.Marshal(generateRequest{
		Model:          c.cfg.Model,
		Prompt:         prompt,
		N:              1,
		AspectRatio:    aspect,
		ResponseFormat: "b64_json",
		OutputFormat:   "jpeg",
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "failed to encode image request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "failed to build image request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "image provider request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "failed to read image response")
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "failed to decode image response")
	}
	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("image provider returned status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", apperrors.New(apperrors.CodeImageProviderError, msg)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return "", apperrors.New(apperrors.CodeImageProviderError, "image provider returned no image")
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeImageProviderError, "image payload is not valid base64")
	}

	return dataurl.New(raw, "image/jpeg").String(), nil
}
