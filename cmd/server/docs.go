package main

// @title Labstock API
// @version 1.0
// @description Lab material reservation platform: material stock ledger, reservations with material line-items and team members.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description User management endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Materials
// @tag.description Material catalog and stock endpoints

// @tag.name Reservations
// @tag.description Reservation lifecycle endpoints

// @tag.name Health
// @tag.description Health check endpoints
