package handler_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"time"

	"fieldscout/pkg/models"
)

// stubStore is an in-memory history.Store.
type stubStore struct {
	entries   []models.HistoryEntry
	loadErr   error
	appendErr error
	pingErr   error

	appendedIndex    float64
	appendedFilename string
	appendCalls      int
}

func (s *stubStore) Load(context.Context) ([]models.HistoryEntry, error) {
	return s.entries, s.loadErr
}

func (s *stubStore) Append(_ context.Context, index float64, filename string) ([]models.HistoryEntry, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	s.appendCalls++
	s.appendedIndex = index
	s.appendedFilename = filename
	s.entries = append(s.entries, models.HistoryEntry{
		Date: "Scan", NDVI: index, Threshold: 0.4, Filename: filename,
	})
	return s.entries, nil
}

func (s *stubStore) Ping(context.Context) error { return s.pingErr }

type stubArtifacts struct {
	err   error
	calls int
}

func (a *stubArtifacts) SavePair(_, _ image.Image) (string, string, error) {
	if a.err != nil {
		return "", "", a.err
	}
	a.calls++
	return "/static/rgb_1_abcd1234.jpg", "/static/vari_1_abcd1234.jpg", nil
}

type stubForecaster struct {
	forecast []models.WeatherDay
	lat, lon float64
	days     int
}

func (f *stubForecaster) Forecast(_ context.Context, lat, lon float64, days int) []models.WeatherDay {
	f.lat, f.lon, f.days = lat, lon, days
	return f.forecast
}

type stubCache struct{ pingErr error }

func (stubCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (stubCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (stubCache) Delete(context.Context, string) error                     { return nil }
func (c stubCache) Ping(context.Context) error                             { return c.pingErr }
func (stubCache) IncrWithExpiry(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}

var errStubDown = errors.New("backend down")

// uploadRequest builds a multipart POST /analyze carrying the given bytes in
// the file field.
func uploadRequest(field, filename string, payload []byte) *http.Request {
	var body bytes.Buffer
	mp := multipart.NewWriter(&body)
	fw, _ := mp.CreateFormFile(field, filename)
	fw.Write(payload)
	mp.Close()

	req, _ := http.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mp.FormDataContentType())
	return req
}

// greenFieldPNG renders a uniform healthy-canopy frame.
func greenFieldPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0, G: 255, B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}
