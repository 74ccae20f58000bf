package container

import (
	"time"

	"go.uber.org/zap"

	app "agro-bot/internal/application"
	"agro-bot/internal/domain/port"
)

type Container struct {
	DiagnosisService *app.DiagnosisService
	TipsService      *app.TipsService
}

func New(
	sessions port.SessionRepository,
	pest port.PestPredictor,
	crop port.CropPredictor,
	consultant port.Consultant,
	camera port.CaptureSource,
	tips port.TipsProvider,
	tipsTTL time.Duration,
	log *zap.SugaredLogger,
) *Container {
	diagnosisService := app.NewDiagnosisService(sessions, pest, crop, consultant, camera, log)
	tipsService := app.NewTipsService(tips, tipsTTL)

	return &Container{
		DiagnosisService: diagnosisService,
		TipsService:      tipsService,
	}
}
