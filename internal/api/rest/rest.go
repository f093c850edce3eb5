package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/encorelab/moment-nft-service/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Rarity preview and edition read model (public read access)
		v1.GET("/moments/:id/rarity", handler.GetRarity)
		v1.GET("/moments/:id/nft-status", handler.GetNFTStatus)

		// Canonical edition metadata document (public, referenced on-chain)
		v1.GET("/moments/:id/nft-metadata", handler.GetEditionMetadata)

		// Edition lifecycle around the wallet signature (owner only)
		v1.POST("/moments/:id/nft-edition/prepare", middleware.Auth(authCfg), handler.PrepareEdition)
		v1.POST("/moments/:id/nft-edition/cancel", middleware.Auth(authCfg), handler.CancelEdition)
		v1.POST("/moments/:id/nft-edition", middleware.Auth(authCfg), handler.RecordEdition)

		// Mint recording (any authenticated minter)
		v1.POST("/moments/:id/mint-record", middleware.Auth(authCfg), handler.RecordMint)

		// On-demand reconciliation against chain truth (authenticated)
		v1.POST("/moments/:id/sync", middleware.Auth(authCfg), handler.Sync)

		// Operator diagnostics (authenticated)
		v1.GET("/moments/:id/diagnostics", middleware.Auth(authCfg), handler.GetDiagnostics)
	}
}
