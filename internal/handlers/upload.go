package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/aed-backend/internal/services"
)

const (
	// maxFormMemory caps multipart parsing at 32MB.
	maxFormMemory = 32 << 20
	// imageField is the multipart field carrying the AED photo.
	imageField = "aedImage"
)

// aedForm is a parsed AED submission. Close releases the image, if any.
type aedForm struct {
	fields services.Fields
	image  *services.ImageFile
	file   multipart.File
}

func (f *aedForm) Close() {
	if f.file != nil {
		f.file.Close()
	}
}

// readAEDForm accepts multipart/form-data, urlencoded forms and JSON objects.
func readAEDForm(r *http.Request) (*aedForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		fields, err := fieldsFromJSON(r.Body)
		if err != nil {
			return nil, err
		}
		return &aedForm{fields: fields}, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		form := &aedForm{fields: services.Fields(r.MultipartForm.Value)}
		if headers := r.MultipartForm.File[imageField]; len(headers) > 0 {
			file, err := headers[0].Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", imageField, err)
			}
			form.file = file
			form.image = &services.ImageFile{Body: file, Filename: headers[0].Filename}
		}
		return form, nil

	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return &aedForm{fields: services.Fields(r.PostForm)}, nil
	}
}

// fieldsFromJSON flattens a JSON object into form-style fields. Nested
// values (location, supply lists) are kept as their JSON text.
func fieldsFromJSON(body io.Reader) (services.Fields, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	fields := make(services.Fields, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			fields[key] = []string{s}
			continue
		}
		if string(value) == "null" {
			fields[key] = []string{""}
			continue
		}
		fields[key] = []string{string(value)}
	}
	return fields, nil
}

var errNotNumber = errors.New("not a number")

// parseCoordinate accepts a JSON number or a numeric string. An absent,
// null or empty value yields nil.
func parseCoordinate(raw json.RawMessage) (*float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errNotNumber
		}
		return &f, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errNotNumber
	}
	return &f, nil
}
