package anlz

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/model"
)

// WriteDAT writes the .DAT file for one track: PMAI, PPTH, PVBR, PQTZ, PWAV,
// PWV2, in that order (testable property 11).
func WriteDAT(w io.Writer, analyzePath string, bundle model.AnalysisBundle, cfg config.Config) error {
	ppth, err := buildPPTH(analyzePath)
	if err != nil {
		return errors.Wrap(err, "anlz: building PPTH")
	}
	pvbr, err := buildPVBR(bundle.VBR)
	if err != nil {
		return errors.Wrap(err, "anlz: building PVBR")
	}
	tempo := bundle.TempoBPM
	if cfg.SkipBPM {
		tempo = 0
	}
	pqtz, err := buildPQTZ(tempo, bundle.Beats, cfg.SkipBPM)
	if err != nil {
		return errors.Wrap(err, "anlz: building PQTZ")
	}
	pwav, err := buildPWAV(bundle.Waveforms, bundle.PCM.OverallPeak)
	if err != nil {
		return errors.Wrap(err, "anlz: building PWAV")
	}
	pwv2, err := buildPWV2(bundle.Waveforms, bundle.PCM.OverallPeak)
	if err != nil {
		return errors.Wrap(err, "anlz: building PWV2")
	}

	data := writeSections([]section{ppth, pvbr, pqtz, pwav, pwv2})
	if _, err := w.Write(data); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// WriteEXT writes the .EXT file for one track: PMAI, PPTH, PWV3, PWV4, PWV5,
// in that order (testable property 11).
func WriteEXT(w io.Writer, analyzePath string, bundle model.AnalysisBundle, durationSeconds int) error {
	ppth, err := buildPPTH(analyzePath)
	if err != nil {
		return errors.Wrap(err, "anlz: building PPTH")
	}
	pwv3, err := buildPWV3(bundle.Waveforms, bundle.PCM.OverallPeak, durationSeconds)
	if err != nil {
		return errors.Wrap(err, "anlz: building PWV3")
	}
	pwv4, err := buildPWV4(bundle.Waveforms, bundle.PCM.OverallPeak)
	if err != nil {
		return errors.Wrap(err, "anlz: building PWV4")
	}
	pwv5, err := buildPWV5(bundle.Waveforms, bundle.PCM.OverallPeak, durationSeconds)
	if err != nil {
		return errors.Wrap(err, "anlz: building PWV5")
	}

	data := writeSections([]section{ppth, pwv3, pwv4, pwv5})
	if _, err := w.Write(data); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
