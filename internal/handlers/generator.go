package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"passkeeper/internal/common"
	"passkeeper/internal/generator"

	"go.uber.org/zap"
)

// GeneratorHandler отдаёт сгенерированные пароли.
type GeneratorHandler struct {
	Gen    PasswordGenerator
	Logger *zap.SugaredLogger
}

// NewGeneratorHandler создаёт хендлер генератора
func NewGeneratorHandler(g PasswordGenerator, logger *zap.SugaredLogger) *GeneratorHandler {
	return &GeneratorHandler{Gen: g, Logger: logger}
}

type generateResponse struct {
	Password string `json:"password"`
	Strength string `json:"strength"`
	Score    int    `json:"score"`
}

// Generate: GET /api/password/generate?length=16&upper=true&lower=true&digits=true&symbols=false.
// Не переданные классы считаются включёнными.
func (h *GeneratorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	length := generator.DefaultLength
	if s := q.Get("length"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, h.Logger, "generate", fmt.Errorf("%w: length %q", common.ErrInvalidLength, s))
			return
		}
		length = n
	}

	var opts generator.Options
	for _, f := range []struct {
		name string
		dst  *bool
	}{
		{"upper", &opts.Upper},
		{"lower", &opts.Lower},
		{"digits", &opts.Digits},
		{"symbols", &opts.Symbols},
	} {
		v, err := boolParam(q, f.name)
		if err != nil {
			writeError(w, h.Logger, "generate", err)
			return
		}
		*f.dst = v
	}

	pw, err := h.Gen.Generate(length, opts)
	if err != nil {
		writeError(w, h.Logger, "generate", err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Password: pw,
		Strength: string(generator.Strength(pw)),
		Score:    generator.Score(pw),
	})
}

func boolParam(q url.Values, name string) (bool, error) {
	s := q.Get(name)
	if s == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", common.ErrInvalidInput, name, s)
	}
	return v, nil
}
