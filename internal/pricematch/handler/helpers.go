package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"price-matcher/internal/fileio"
)

// matchRequest — тело POST /match.
type matchRequest struct {
	Prices   string `json:"prices"`
	Products string `json:"products"`
	Locked   bool   `json:"locked"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeMatchRequest принимает JSON или обычную форму (prices, products, locked).
func decodeMatchRequest(r *http.Request) (matchRequest, error) {
	var req matchRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json", "":
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return req, errors.New("empty body")
			}
			return req, fmt.Errorf("bad json: %w", err)
		}
		return req, nil
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("bad form: %w", err)
		}
		req.Prices = r.FormValue("prices")
		req.Products = r.FormValue("products")
		req.Locked = toBool(r.FormValue("locked"), false)
		return req, nil
	default:
		return req, fmt.Errorf("unsupported content type: %s", ct)
	}
}

// formText: файл из multipart-поля, иначе текстовое поле с тем же именем.
func formText(r *http.Request, field string) (string, error) {
	f, h, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return r.FormValue(field), nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	defer f.Close()

	s, err := fileio.ReadAnyText(f, h.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", field, err)
	}
	return s, nil
}

// wantsText — клиенту нужен только текст для вставки в таблицу.
func wantsText(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, errorResponse{Error: msg})
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
