package config

import (
	"time"

	"github.com/seekscript/seekscript/key"
	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/rail"
	"github.com/seekscript/seekscript/transcript"
	"github.com/spf13/viper"
)

// RailOptions builds the seek rail options from the active configuration.
func RailOptions() rail.Options {
	return rail.Options{
		SeekStep:     float64(viper.GetInt(key.RailSeekStep)),
		ProgressText: viper.GetString(key.RailProgressText),
		Touch:        viper.GetBool(key.RailTouch),
		Logger:       log.For("rail"),
	}
}

// TranscriptOptions builds the transcript engine options from the active configuration.
func TranscriptOptions() (transcript.Options, error) {
	policy, err := transcript.ParsePolicy(viper.GetString(key.TranscriptPolicy))
	if err != nil {
		return transcript.Options{}, err
	}

	return transcript.Options{
		Policy:         policy,
		AutoScroll:     viper.GetBool(key.TranscriptAutoScroll),
		ScrollDuration: time.Duration(viper.GetInt(key.TranscriptScrollMs)) * time.Millisecond,
		Logger:         log.For("transcript"),
	}, nil
}
