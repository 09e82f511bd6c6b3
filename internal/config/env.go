package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/WIZARDISHUNGRY/logo-synth/internal/canvas"
	"github.com/WIZARDISHUNGRY/logo-synth/internal/synth"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const envPrefix = "LOGO_"

// LoadEnv applies LOGO_* settings from the dotenv file at path and then from
// the process environment. A missing file is not an error.
func (c *Config) LoadEnv(path string) error {
	env := map[string]string{}
	if path != "" {
		fileEnv, err := godotenv.Read(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return errors.Wrapf(err, "godotenv.Read %s", path)
		default:
			env = fileEnv
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return c.ApplyEnv(env)
}

// ApplyEnv applies the LOGO_* keys of env. LOGO_PRESET is applied first so
// the other keys override it.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[envPrefix+"PRESET"]; ok && v != "" {
		if err := c.ApplyPreset(v); err != nil {
			return err
		}
	}
	for key, v := range env {
		if !strings.HasPrefix(key, envPrefix) || key == envPrefix+"PRESET" {
			continue
		}
		if err := c.set(strings.TrimPrefix(key, envPrefix), v); err != nil {
			return errors.Wrapf(err, "%s", key)
		}
	}
	return nil
}

func (c *Config) set(key, v string) error {
	var err error
	switch key {
	case "SIZE":
		c.Size, err = strconv.Atoi(v)
	case "SUPERSAMPLE":
		c.Supersample, err = strconv.Atoi(v)
	case "START_COLOR":
		c.Start, err = ParseColor(v)
	case "END_COLOR":
		c.End, err = ParseColor(v)
	case "GRADIENT":
		c.Gradient, err = ParseGradientKind(v)
	case "ANGLE":
		c.Angle, err = strconv.ParseFloat(v, 64)
	case "RADIUS":
		c.Radius, err = strconv.ParseFloat(v, 64)
	case "START_ANGLE":
		c.StartAngle, err = strconv.ParseFloat(v, 64)
	case "END_ANGLE":
		c.EndAngle, err = strconv.ParseFloat(v, 64)
	case "SHARPEN":
		c.Sharpen, err = ParseUnsharpMask(v)
	case "STRIP":
		c.Strip, err = strconv.ParseBool(v)
	case "THRESHOLD":
		c.Threshold, err = strconv.Atoi(v)
	case "RECOLOR":
		err = optionalColorValue{&c.Recolor}.Set(v)
	case "CLEAR_TRANSPARENT":
		c.ClearTransparent, err = strconv.ParseBool(v)
	case "CROP":
		c.Crop, err = strconv.ParseBool(v)
	case "COMPRESSION":
		c.Compression, err = strconv.Atoi(v)
	case "WORKERS":
		c.Workers, err = strconv.Atoi(v)
	default:
		// unrelated LOGO_* variables are left alone
	}
	return err
}

// ParseGradientKind accepts the names printed by synth.GradientKind.String.
func ParseGradientKind(s string) (synth.GradientKind, error) {
	for k := synth.GradientDiagonal; k <= synth.GradientRadial; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(canvas.ErrInvalidConfig, "gradient %q", s)
}

// ParseUnsharpMask parses "radius,percent,threshold". An empty string or
// "off" disables sharpening.
func ParseUnsharpMask(s string) (*synth.UnsharpMask, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "off") {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, errors.Wrapf(canvas.ErrInvalidConfig, "sharpen %q: want radius,percent,threshold", s)
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errors.Wrap(err, "sharpen radius")
	}
	p, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errors.Wrap(err, "sharpen percent")
	}
	t, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, errors.Wrap(err, "sharpen threshold")
	}
	return &synth.UnsharpMask{Radius: r, Percent: p, Threshold: t}, nil
}

func formatUnsharpMask(u *synth.UnsharpMask) string {
	if u == nil {
		return "off"
	}
	return strconv.FormatFloat(u.Radius, 'g', -1, 64) + "," +
		strconv.Itoa(u.Percent) + "," + strconv.Itoa(u.Threshold)
}
