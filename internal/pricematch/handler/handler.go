package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"price-matcher/internal/middleware"
	"price-matcher/internal/pricematch/model"
	"price-matcher/internal/pricematch/service"
)

// Match — POST /match: JSON {"prices","products","locked"} или форма.
// r.Post("/match", pmHnd.Match(eng, logger)) в роутере.
func Match(eng *service.Engine, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMatchRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		respond(w, r, eng, logger, req)
	}
}

// Upload — POST /match/upload: multipart, поля prices/products — файлы
// (xlsx, xls, csv, tsv, txt) или текст; locked — флаг.
func Upload(eng *service.Engine, maxMemory int64, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}
		prices, err := formText(r, "prices")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		products, err := formText(r, "products")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		respond(w, r, eng, logger, matchRequest{
			Prices:   prices,
			Products: products,
			Locked:   toBool(r.FormValue("locked"), false),
		})
	}
}

// Rules — GET /rules: активные таблицы эвристик.
func Rules(eng *service.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, eng.Rules())
	}
}

func respond(w http.ResponseWriter, r *http.Request, eng *service.Engine, logger zerolog.Logger, req matchRequest) {
	start := time.Now()
	log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
	mode := model.ModeFromLocked(req.Locked)

	// UI дёргает пересчёт на каждый ввод: отменённый запрос просто бросаем
	res, err := eng.Run(r.Context(), req.Prices, req.Products, mode)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Debug().Err(err).Msg("match superseded")
			return
		}
		log.Error().Err(err).Msg("match")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(res.Text))
	} else if err := writeJSON(w, http.StatusOK, res); err != nil {
		log.Error().Err(err).Msg("write json")
		return
	}

	log.Info().
		Str("mode", string(mode)).
		Int("matched", res.Stats.Matched).
		Int("unmatched", res.Stats.Unmatched).
		Int("total", res.Stats.Total).
		Dur("elapsed", time.Since(start)).
		Msg("match done")
}
