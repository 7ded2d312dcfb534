package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/service"
	"github.com/larsreed/recipes-sub000/models"
)

const multipartMemory = 8 << 20

type attachmentPayload struct {
	ID       uint   `json:"id"`
	RecipeID uint   `json:"recipeId"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Content  string `json:"content"`
	Size     int    `json:"size"`
}

type attachmentTextResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func projectAttachment(attachment models.Attachment) attachmentPayload {
	return attachmentPayload{
		ID:       attachment.ID,
		RecipeID: attachment.RecipeID,
		FileName: attachment.FileName,
		FileType: attachment.FileType,
		Content:  service.EncodePayload(attachment.Content),
		Size:     len(attachment.Content),
	}
}

func (p attachmentPayload) model() (*models.Attachment, error) {
	content, err := service.DecodePayload(p.Content)
	if err != nil {
		return nil, err
	}
	return &models.Attachment{
		ID:       p.ID,
		RecipeID: p.RecipeID,
		FileName: p.FileName,
		FileType: p.FileType,
		Content:  content,
	}, nil
}

// limitBody caps the request body at a size large enough for the largest
// accepted attachment in base64 form.
func limitBody(w http.ResponseWriter, r *http.Request) {
	if attachmentService == nil || attachmentService.MaxBytes() <= 0 {
		return
	}
	limit := attachmentService.MaxBytes()*2 + multipartMemory
	r.Body = http.MaxBytesReader(w, r.Body, limit)
}

// AttachmentResource handles uploads, downloads and removal of recipe attachments.
func AttachmentResource(w http.ResponseWriter, r *http.Request) {
	if attachmentService == nil {
		serviceUnavailable(w, r)
		return
	}

	segments := resourcePath(r, "/attachments")
	if len(segments) == 0 {
		if r.Method == http.MethodPost {
			createAttachment(w, r)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	attachmentID, ok := parseID(w, r, segments[0])
	if !ok {
		return
	}

	if len(segments) > 1 {
		if r.Method != http.MethodGet || len(segments) > 2 {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch segments[1] {
		case "raw":
			downloadAttachment(w, r, attachmentID)
		case "text":
			attachmentText(w, r, attachmentID)
		default:
			writeJSONError(w, http.StatusNotFound, "not found")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showAttachment(w, r, attachmentID)
	case http.MethodDelete:
		deleteAttachment(w, r, attachmentID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createAttachment(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r)

	var (
		attachment *models.Attachment
		ok         bool
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		attachment, ok = readMultipartAttachment(w, r)
	} else {
		attachment, ok = readJSONAttachment(w, r)
	}
	if !ok {
		return
	}

	created, err := attachmentService.Create(r.Context(), attachment)
	if err != nil {
		writeServiceError(w, r, err, "store attachment")
		return
	}
	applog.Info(r.Context(), "attachment uploaded", "id", created.ID, "recipeID", created.RecipeID, "fileName", created.FileName)
	writeJSON(w, http.StatusCreated, projectAttachment(*created))
}

func readJSONAttachment(w http.ResponseWriter, r *http.Request) (*models.Attachment, bool) {
	var payload attachmentPayload
	if !decodeJSON(w, r, &payload) {
		return nil, false
	}
	attachment, err := payload.model()
	if err != nil {
		writeServiceError(w, r, err, "decode attachment")
		return nil, false
	}
	return attachment, true
}

func readMultipartAttachment(w http.ResponseWriter, r *http.Request) (*models.Attachment, bool) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		applog.Debug(r.Context(), "failed to parse multipart upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid multipart upload")
		return nil, false
	}

	recipeID, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("recipeId")), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "recipeId is required")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		applog.Debug(r.Context(), "multipart upload without file", "error", err)
		writeJSONError(w, http.StatusBadRequest, "file is required")
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		applog.Error(r.Context(), "failed to read uploaded file", "error", err)
		writeJSONError(w, http.StatusBadRequest, "unable to read uploaded file")
		return nil, false
	}

	fileType := header.Header.Get("Content-Type")
	if fileType == "application/octet-stream" {
		fileType = ""
	}
	return &models.Attachment{
		RecipeID: uint(recipeID),
		FileName: header.Filename,
		FileType: fileType,
		Content:  content,
	}, true
}

func showAttachment(w http.ResponseWriter, r *http.Request, attachmentID uint) {
	attachment, err := attachmentService.Get(r.Context(), attachmentID)
	if err != nil {
		writeServiceError(w, r, err, "load attachment")
		return
	}
	writeJSON(w, http.StatusOK, projectAttachment(*attachment))
}

func downloadAttachment(w http.ResponseWriter, r *http.Request, attachmentID uint) {
	attachment, err := attachmentService.Get(r.Context(), attachmentID)
	if err != nil {
		writeServiceError(w, r, err, "load attachment")
		return
	}

	etag := `"` + service.Checksum(attachment) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, must-revalidate")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	fileType := attachment.FileType
	if fileType == "" {
		fileType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", fileType)
	w.Header().Set("Content-Length", strconv.Itoa(len(attachment.Content)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachment.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(attachment.Content); err != nil {
		applog.Error(r.Context(), "failed to write attachment", "id", attachmentID, "error", err)
	}
}

func attachmentText(w http.ResponseWriter, r *http.Request, attachmentID uint) {
	text, err := attachmentService.ExtractText(r.Context(), attachmentID)
	if err != nil {
		writeServiceError(w, r, err, "extract attachment text")
		return
	}
	writeJSON(w, http.StatusOK, attachmentTextResponse{ID: attachmentID, Text: text})
}

func deleteAttachment(w http.ResponseWriter, r *http.Request, attachmentID uint) {
	if err := attachmentService.Delete(r.Context(), attachmentID); err != nil {
		writeServiceError(w, r, err, "delete attachment")
		return
	}
	applog.Info(r.Context(), "attachment deleted", "id", attachmentID)
	w.WriteHeader(http.StatusNoContent)
}
