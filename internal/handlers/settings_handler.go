package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/domain/business"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/store"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const maxLogoBytes = 5 << 20

type SettingsHandler struct {
	settings *store.SettingsStore
	storage  storage.Storage
	bucket   string
	logger   *zap.Logger
	now      func() time.Time
}

func NewSettingsHandler(settings *store.SettingsStore, st storage.Storage, bucket string, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, storage: st, bucket: bucket, logger: logger, now: time.Now}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	httpresp.OK(c, h.settings.Current())
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var p business.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if p.Timezone != nil && !timezone.IsValid(*p.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}
	if p.Phone != nil {
		email := ""
		if !normalizeContact(c, &email, p.Phone) {
			return
		}
	}

	if err := h.settings.Update(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, h.settings.Current())
}

// UploadLogo re-encodes the "logo" form file as WebP, stores it under a
// timestamped name and points the settings at its public URL.
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	fh, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "logo_required", "Arquivo de logo é obrigatório.")
		return
	}
	if fh.Size > maxLogoBytes {
		httperr.BadRequest(c, "logo_too_large", "O logo deve ter no máximo 5MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "logo_required", "Arquivo de logo é obrigatório.")
		return
	}
	defer f.Close()

	// 1️⃣ Converte para WebP
	blob, err := storage.EncodeLogo(f, storage.LogoMaxSide)
	if errors.Is(err, storage.ErrLogoDimensions) {
		httperr.BadRequest(c, "logo_dimensions_too_large", "O logo deve ter no máximo 4096x4096 pixels.")
		return
	}
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	// 2️⃣ Upload
	ctx := c.Request.Context()
	name := fmt.Sprintf("logo-%d.webp", h.now().UnixMilli())
	stored, err := h.storage.Upload(ctx, h.bucket, name, blob, storage.UploadOptions{
		Upsert:      true,
		ContentType: storage.LogoContentType,
	})
	if err != nil {
		h.logger.Error("logo upload failed", zap.Error(err))
		respondError(c, err)
		return
	}

	// 3️⃣ Atualiza configurações
	url := h.storage.PublicURL(h.bucket, stored)
	if err := h.settings.SetLogo(ctx, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
