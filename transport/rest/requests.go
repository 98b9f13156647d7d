package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type cellRequest struct {
	Index int `validate:"min=0,max=8"`
}

type modeRequest struct {
	Mode string `validate:"required,oneof=pvp ai"`
}

type difficultyRequest struct {
	Difficulty string `validate:"required,oneof=easy medium hard"`
}

func parseCellRequest(r *http.Request) (*cellRequest, error) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		return nil, fmt.Errorf("invalid index: %w", err)
	}

	req := &cellRequest{Index: index}
	if err = validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid cell request: %w", err)
	}

	return req, nil
}

func parseModeRequest(r *http.Request) (*modeRequest, error) {
	req := &modeRequest{Mode: r.FormValue("mode")}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid mode request: %w", err)
	}

	return req, nil
}

func parseDifficultyRequest(r *http.Request) (*difficultyRequest, error) {
	req := &difficultyRequest{Difficulty: r.FormValue("difficulty")}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid difficulty request: %w", err)
	}

	return req, nil
}
