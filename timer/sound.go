package timer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/tomate-app/tomate/internal/pathutil"
)

const soundsDir = "sounds"

// SoundOpts lists the selectable ambient sounds: "off" plus every audio
// file dropped into the sounds directory under the data dir.
func SoundOpts() []string {
	opts := []string{"off"}

	dir, err := os.ReadDir(
		filepath.Join(xdg.DataHome, pathutil.Dir(), soundsDir),
	)
	if err != nil {
		return opts
	}

	for _, v := range dir {
		if v.IsDir() {
			continue
		}

		opts = append(opts, pathutil.StripExtension(v.Name()))
	}

	return opts
}

// resolveSoundPath maps a bare sound name to a file in the sounds
// directory. Paths with an extension are used as-is.
func resolveSoundPath(sound string) string {
	if filepath.Ext(sound) != "" {
		return sound
	}

	base, err := xdg.SearchDataFile(
		filepath.Join(pathutil.Dir(), soundsDir, sound+".ogg"),
	)
	if err != nil {
		return sound + ".ogg"
	}

	return base
}

// prepSoundStream returns an audio stream for the specified sound.
func prepSoundStream(sound string) (beep.StreamSeekCloser, error) {
	pathToFile := resolveSoundPath(sound)

	f, err := os.Open(pathToFile)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch filepath.Ext(pathToFile) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return nil, errInvalidSoundFormat
	}

	if err != nil {
		return nil, err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return nil, err
	}

	err = stream.Seek(0)
	if err != nil {
		return nil, err
	}

	return stream, nil
}

// setAmbientSound prepares the looping background stream for the
// configured ambient sound, or clears it when none is set.
func (t *Timer) setAmbientSound() error {
	if t.Opts.Settings.AmbientSound == "" {
		t.SoundStream = nil
		return nil
	}

	stream, err := prepSoundStream(t.Opts.Settings.AmbientSound)
	if err != nil {
		return err
	}

	t.SoundStream = beep.Loop(-1, stream)

	return nil
}

// playAlertSound plays the phase-end alert sound and blocks until it
// finishes.
func playAlertSound(sound string) error {
	stream, err := prepSoundStream(sound)
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	_ = stream.Close()

	speaker.Clear()

	return nil
}
