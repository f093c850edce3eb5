package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/api/middleware"
	"github.com/encorelab/moment-nft-service/internal/chain"
	"github.com/encorelab/moment-nft-service/internal/diag"
	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/edition"
	"github.com/encorelab/moment-nft-service/internal/ledger"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/metadata"
	"github.com/encorelab/moment-nft-service/internal/rarity"
	"github.com/encorelab/moment-nft-service/internal/reconcile"
	"github.com/encorelab/moment-nft-service/internal/store"
	"github.com/encorelab/moment-nft-service/internal/store/schema"
	"github.com/encorelab/moment-nft-service/internal/types"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetRarity previews the rarity score for a moment
	// GET /api/v1/moments/:id/rarity
	GetRarity(c *gin.Context)

	// GetEditionMetadata serves the canonical edition metadata document
	// GET /api/v1/moments/:id/nft-metadata
	GetEditionMetadata(c *gin.Context)

	// PrepareEdition derives mint parameters and marks the ledger pending
	// ahead of the wallet signature
	// POST /api/v1/moments/:id/nft-edition/prepare
	PrepareEdition(c *gin.Context)

	// CancelEdition clears the pending state after a declined signature
	// POST /api/v1/moments/:id/nft-edition/cancel
	CancelEdition(c *gin.Context)

	// RecordEdition records a confirmed edition creation
	// POST /api/v1/moments/:id/nft-edition
	RecordEdition(c *gin.Context)

	// RecordMint records a confirmed mint transaction, idempotent on tx hash
	// POST /api/v1/moments/:id/mint-record
	RecordMint(c *gin.Context)

	// GetNFTStatus returns the edition read model for a moment
	// GET /api/v1/moments/:id/nft-status
	GetNFTStatus(c *gin.Context)

	// Sync triggers reconciliation against chain truth
	// POST /api/v1/moments/:id/sync
	Sync(c *gin.Context)

	// GetDiagnostics returns a side-by-side ledger/chain report
	// GET /api/v1/moments/:id/diagnostics
	GetDiagnostics(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// Config holds handler settings
type Config struct {
	// ContractAddress is the deployed editions contract
	ContractAddress string
	// MetadataBaseURL prefixes the metadata URIs handed to the wallet
	MetadataBaseURL string
}

// handler implements the Handler interface
type handler struct {
	config     Config
	store      store.Store
	scorer     rarity.Scorer
	policy     *edition.Policy
	builder    *metadata.Builder
	ledger     ledger.Ledger
	gateway    chain.Gateway
	reconciler reconcile.Service
	diag       diag.Service
}

// NewHandler creates a new REST API handler
func NewHandler(
	cfg Config,
	st store.Store,
	scorer rarity.Scorer,
	policy *edition.Policy,
	builder *metadata.Builder,
	led ledger.Ledger,
	gateway chain.Gateway,
	reconciler reconcile.Service,
	diagnostics diag.Service,
) Handler {
	return &handler{
		config:     cfg,
		store:      st,
		scorer:     scorer,
		policy:     policy,
		builder:    builder,
		ledger:     led,
		gateway:    gateway,
		reconciler: reconciler,
		diag:       diagnostics,
	}
}

// GetRarity previews the rarity score for a moment
func (h *handler) GetRarity(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}

	score := h.scorer.Score(types.ToDomainMoment(moment))
	c.JSON(http.StatusOK, score)
}

// GetEditionMetadata serves the canonical edition metadata document
func (h *handler) GetEditionMetadata(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}

	snapshot := types.ToDomainMoment(moment)
	doc := h.builder.Build(snapshot, h.scorer.Score(snapshot))
	c.JSON(http.StatusOK, doc)
}

// PrepareEdition derives mint parameters and marks the ledger pending. The
// pending row is the optimistic state around a dispatched creation; it is
// cleared by CancelEdition on decline and promoted by RecordEdition on
// confirmation.
func (h *handler) PrepareEdition(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, moment) {
		return
	}

	var req PrepareEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	exists, err := h.ledger.HasEdition(c.Request.Context(), moment.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to check edition state")
		return
	}

	snapshot := types.ToDomainMoment(moment)
	score := h.scorer.Score(snapshot)
	metadataURI := h.metadataURI(moment.ID)

	params, err := h.policy.MintParams(score, exists, req.DurationDays, req.MaxSupply, metadataURI)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditionExists):
			respondConflict(c, "Edition already exists for this moment")
		case errors.Is(err, domain.ErrInvalidDuration):
			respondValidationError(c, fmt.Sprintf("duration_days must be one of %v", edition.AllowedDurationDays))
		default:
			respondInternalError(c, err, "Failed to derive mint parameters")
		}
		return
	}

	if err := h.ledger.MarkPending(c.Request.Context(), moment.ID, *params, h.config.ContractAddress); err != nil {
		if errors.Is(err, domain.ErrEditionExists) {
			respondConflict(c, "Edition already exists for this moment")
			return
		}
		respondInternalError(c, err, "Failed to mark edition pending")
		return
	}

	c.JSON(http.StatusOK, PrepareEditionResponse{
		MomentID:     moment.ID,
		PriceWei:     params.PriceWei.String(),
		DurationDays: params.DurationDays,
		MaxSupply:    params.MaxSupply,
		Rarity:       params.Rarity,
		RarityTier:   params.Tier,
		MetadataURI:  params.MetadataURI,
		Metadata:     h.builder.Build(snapshot, score),
		Contract:     h.config.ContractAddress,
	})
}

// CancelEdition clears the pending state after a declined wallet signature.
// A decline is a normal terminal outcome for the attempt, not a fault; it
// never mutates anything beyond the pending row.
func (h *handler) CancelEdition(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, moment) {
		return
	}

	if err := h.ledger.ClearPending(c.Request.Context(), moment.ID); err != nil {
		respondInternalError(c, err, "Failed to clear pending edition")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// RecordEdition records a confirmed edition creation. The ledger write only
// happens after the transaction is confirmed and the edition is readable
// from the chain: a broadcast that ultimately reverts must never leave a
// false-positive edition row behind.
func (h *handler) RecordEdition(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, moment) {
		return
	}

	var req RecordEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	status, err := h.gateway.WaitForConfirmation(ctx, req.TxHash)
	if err != nil {
		respondInternalError(c, err, "Failed to watch transaction")
		return
	}

	switch status {
	case domain.ConfirmationReverted:
		// Reverted creations leave only the pending row to clean up
		if err := h.ledger.ClearPending(ctx, moment.ID); err != nil {
			logger.WarnCtx(ctx, "failed to clear pending edition after revert",
				zap.Uint64("momentID", moment.ID), zap.Error(err))
		}
		respondChainRejected(c, "creation transaction reverted")
		return
	case domain.ConfirmationIndeterminate:
		respondIndeterminate(c, req.TxHash)
		return
	}

	view, err := h.gateway.GetEdition(ctx, moment.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to read chain edition")
		return
	}
	if view == nil {
		// Confirmed transaction but no edition: the hash does not belong to
		// this moment's creation
		respondValidationError(c, "confirmed transaction did not create an edition for this moment")
		return
	}

	snapshot := types.ToDomainMoment(moment)
	score := h.scorer.Score(snapshot)

	err = h.ledger.RecordCreation(ctx, moment.ID, req.TxHash, h.config.ContractAddress, score.Tier, view)
	if err != nil {
		if errors.Is(err, domain.ErrEditionExists) {
			respondConflict(c, "Edition already exists for this moment")
			return
		}
		respondInternalError(c, err, "Failed to record edition creation")
		return
	}

	statusView, err := h.ledger.Status(ctx, moment.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to read edition status")
		return
	}
	c.JSON(http.StatusCreated, statusView)
}

// RecordMint records a confirmed mint transaction, idempotent on tx hash
func (h *handler) RecordMint(c *gin.Context) {
	moment, ok := h.loadMoment(c)
	if !ok {
		return
	}

	var req RecordMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	status, err := h.gateway.WaitForConfirmation(ctx, req.TxHash)
	if err != nil {
		respondInternalError(c, err, "Failed to watch transaction")
		return
	}

	switch status {
	case domain.ConfirmationReverted:
		respondChainRejected(c, "mint transaction reverted")
		return
	case domain.ConfirmationIndeterminate:
		respondIndeterminate(c, req.TxHash)
		return
	}

	recorded, err := h.ledger.RecordMint(ctx, moment.ID, req.MinterAddress, req.Quantity, req.TxHash, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrEditionNotFound) {
			respondNotFound(c, "No edition exists for this moment")
			return
		}
		respondInternalError(c, err, "Failed to record mint")
		return
	}

	statusView, err := h.ledger.Status(ctx, moment.ID)
	if err != nil {
		respondInternalError(c, err, "Failed to read edition status")
		return
	}
	c.JSON(http.StatusOK, RecordMintResponse{
		Recorded:    recorded,
		MintedCount: statusView.MintedCount,
	})
}

// GetNFTStatus returns the edition read model for a moment
func (h *handler) GetNFTStatus(c *gin.Context) {
	momentID, ok := h.momentID(c)
	if !ok {
		return
	}

	statusView, err := h.ledger.Status(c.Request.Context(), momentID)
	if err != nil {
		respondInternalError(c, err, "Failed to read edition status")
		return
	}
	c.JSON(http.StatusOK, statusView)
}

// Sync triggers reconciliation against chain truth
func (h *handler) Sync(c *gin.Context) {
	momentID, ok := h.momentID(c)
	if !ok {
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), momentID)
	if err != nil {
		respondInternalError(c, err, "Failed to reconcile")
		return
	}
	c.JSON(http.StatusOK, SyncResponse{
		Repaired:    result.Repaired,
		FaultID:     result.FaultID,
		MintedCount: result.MintedCount,
	})
}

// GetDiagnostics returns a side-by-side ledger/chain report for operators
func (h *handler) GetDiagnostics(c *gin.Context) {
	momentID, ok := h.momentID(c)
	if !ok {
		return
	}

	report, err := h.diag.Snapshot(c.Request.Context(), momentID)
	if err != nil {
		respondInternalError(c, err, "Failed to build diagnostics report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// momentID parses the :id path parameter
func (h *handler) momentID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid moment ID")
		return 0, false
	}
	return id, true
}

// loadMoment parses the :id parameter and loads the moment row
func (h *handler) loadMoment(c *gin.Context) (*schema.Moment, bool) {
	momentID, ok := h.momentID(c)
	if !ok {
		return nil, false
	}

	moment, err := h.store.GetMoment(c.Request.Context(), momentID)
	if err != nil {
		respondInternalError(c, err, "Failed to load moment")
		return nil, false
	}
	if moment == nil {
		respondNotFound(c, "Moment not found", domain.ErrMomentNotFound.Error())
		return nil, false
	}
	return moment, true
}

// requireOwner checks that the authenticated subject owns the moment.
// Addresses compare case-insensitively since checksummed and lowercase
// forms of the same address are interchangeable.
func (h *handler) requireOwner(c *gin.Context, moment *schema.Moment) bool {
	subject := c.GetString(middleware.AuthSubjectKey)
	if subject == "" || !strings.EqualFold(subject, moment.OwnerAddress) {
		respondForbidden(c, "Caller is not the moment owner", domain.ErrNotOwner.Error())
		return false
	}
	return true
}

// metadataURI builds the canonical metadata URI for a moment's edition
func (h *handler) metadataURI(momentID uint64) string {
	return fmt.Sprintf("%s/api/v1/moments/%d/nft-metadata", h.config.MetadataBaseURL, momentID)
}
