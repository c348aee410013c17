package controllers

import (
	"github.com/angelmondragon/stationdesk-backend/internal/uploads"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

// UploadProcedures serves base64 document uploads. The router caps the
// request body size before decoding.
func UploadProcedures(svc uploads.Service, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "upload.uploadEmployeeDocument", Kind: Mutation, Access: Authenticated, Handler: handle(logg, svc.UploadEmployeeDocument)},
	}
}
