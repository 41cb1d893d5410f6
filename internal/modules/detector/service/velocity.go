package service

import (
	"github.com/pkg/errors"

	"github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/models"
	structsvc "github.com/HONEYPOTZ-AI/AI-QUANT-sub001/internal/modules/structure/service"
)

// VelocitySpike fires only when BOTH the velocity ratio and the volume ratio
// clear their thresholds. Velocity alone is a known false-positive source;
// the volume confirmation is load-bearing.
func (d *Detector) VelocitySpike(snap *structsvc.Snapshot) (models.VelocityResult, error) {
	cur := snap.Current

	vel, ok := snap.Velocity.At(cur)
	if !ok {
		return models.VelocityResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"velocity undefined at index %d", cur)
	}
	avgVel, ok := snap.VelocityAvg.At(cur)
	if !ok {
		return models.VelocityResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"velocity average undefined at index %d", cur)
	}
	avgVol, ok := snap.VolSMA.At(cur)
	if !ok {
		return models.VelocityResult{}, errors.Wrapf(models.ErrInsufficientHistory,
			"volume SMA undefined at index %d", cur)
	}

	res := models.VelocityResult{
		CurrentVelocity: vel,
		AvgVelocity:     avgVel,
		Reason:          models.ReasonVelocityNoSpike,
	}
	if avgVel > 0 {
		res.VelocityRatio = vel / avgVel
	}
	if avgVol > 0 {
		res.VolumeRatio = snap.EntryCandles[cur].Volume / avgVol
	}

	if res.VelocityRatio <= d.p.VelocityRatioMin {
		return res, nil
	}
	if res.VolumeRatio <= d.p.VolumeRatioMin {
		res.Reason = models.ReasonVolumeNotConfirmed
		return res, nil
	}
	res.Spike = true
	res.Reason = models.ReasonVelocitySpike
	return res, nil
}
