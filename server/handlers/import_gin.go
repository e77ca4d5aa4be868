// Package handlers содержит HTTP-обработчики сервера импорта контактов.
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"importserver/importer"
	"importserver/normalization"
	apperrors "importserver/server/errors"
	"importserver/server/middleware"
	"importserver/server/services"
)

// ImportHandler обработчики импорта и просмотра контактов
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler создает новый обработчик импорта
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportProcessRequest тело запроса на обработку батча
type ImportProcessRequest struct {
	Records []normalization.RawRecord `json:"records"`
	Commit  bool                      `json:"commit"`
}

// ContactsListResponse ответ со списком сохраненных контактов
type ContactsListResponse struct {
	Contacts []normalization.CanonicalRecord `json:"contacts"`
	Total    int                             `json:"total"`
	Limit    int                             `json:"limit"`
	Offset   int                             `json:"offset"`
}

// HandleImportProcessGin обработчик обработки батча записей
// @Summary Обработать батч записей контактов
// @Description Нормализует, валидирует и дедуплицирует записи; при commit=true сохраняет уникальные
// @Tags import
// @Accept json
// @Produce json
// @Param request body ImportProcessRequest true "Батч сырых записей"
// @Success 200 {object} services.ImportOutcome "Результат обработки"
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Failure 413 {object} middleware.ErrorResponse "Батч слишком большой"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/import/process [post]
func (h *ImportHandler) HandleImportProcessGin(c *gin.Context) {
	var req ImportProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, apperrors.NewValidationError("invalid JSON body", err))
		return
	}

	outcome, appErr := h.service.ProcessBatch(c.Request.Context(), req.Records, req.Commit)
	if appErr != nil {
		middleware.RespondWithError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HandleImportUploadGin обработчик загрузки файла с контактами
// @Summary Загрузить CSV или XLSX файл с контактами
// @Description Разбирает файл в сырые записи и прогоняет их через пайплайн; commit=true сохраняет уникальные
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV или XLSX файл"
// @Param commit query bool false "Сохранить уникальные записи"
// @Success 200 {object} services.ImportOutcome "Результат обработки"
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Failure 415 {object} middleware.ErrorResponse "Неподдерживаемый формат файла"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/import/upload [post]
func (h *ImportHandler) HandleImportUploadGin(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.RespondWithError(c, apperrors.NewValidationError("file field is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.RespondWithError(c, apperrors.NewInternalError("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	var records []normalization.RawRecord
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		records, err = importer.ParseContactsCSV(file)
	case ".xlsx":
		records, err = importer.ParseContactsExcel(file)
	default:
		middleware.RespondWithError(c, apperrors.NewUnsupportedMediaTypeError(
			"unsupported file format, expected .csv or .xlsx", nil))
		return
	}
	if err != nil {
		middleware.RespondWithError(c, apperrors.NewValidationError("failed to parse file", err))
		return
	}

	commit := c.Query("commit") == "true"

	outcome, appErr := h.service.ProcessBatch(c.Request.Context(), records, commit)
	if appErr != nil {
		middleware.RespondWithError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HandleContactsListGin обработчик списка сохраненных контактов
// @Summary Список сохраненных контактов
// @Tags contacts
// @Produce json
// @Param limit query int false "Максимум записей" default(100)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} ContactsListResponse "Список контактов"
// @Failure 400 {object} middleware.ErrorResponse "Неверный запрос"
// @Failure 500 {object} middleware.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/contacts [get]
func (h *ImportHandler) HandleContactsListGin(c *gin.Context) {
	limit, err := parsePositiveIntQuery(c, "limit", 100)
	if err != nil {
		middleware.RespondWithError(c, apperrors.NewValidationError("invalid limit parameter", err))
		return
	}
	offset, err := parsePositiveIntQuery(c, "offset", 0)
	if err != nil {
		middleware.RespondWithError(c, apperrors.NewValidationError("invalid offset parameter", err))
		return
	}

	contacts, total, appErr := h.service.ListContacts(limit, offset)
	if appErr != nil {
		middleware.RespondWithError(c, appErr)
		return
	}

	c.JSON(http.StatusOK, ContactsListResponse{
		Contacts: contacts,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// HandleHealthGin обработчик проверки живости сервера
// @Summary Проверка работоспособности
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "Статус сервера"
// @Router /health [get]
func (h *ImportHandler) HandleHealthGin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func parsePositiveIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be non-negative, got %d", name, value)
	}
	return value, nil
}
