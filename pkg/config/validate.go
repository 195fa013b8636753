package config

import (
	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/label"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Validate reports the first invalid setting.
func (c Chart) Validate() error {
	if !(c.Width > 0 && c.Width <= MaxSize) || !(c.Height > 0 && c.Height <= MaxSize) {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be within (0, %g], got %gx%g", MaxSize, c.Width, c.Height)
	}
	if _, err := geom.ParseOrientation(c.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "orientation")
	}
	if err := c.Renderer.validate(); err != nil {
		return err
	}
	if err := c.CategoryAxis.validate(); err != nil {
		return err
	}
	if err := c.ValueAxis.validate(); err != nil {
		return err
	}
	if err := c.Style.validate(); err != nil {
		return err
	}
	if err := c.Labels.validate(); err != nil {
		return err
	}
	return c.validateGroups()
}

func (r Renderer) validate() error {
	if err := errors.ValidateFraction("renderer.max_bar_width", r.MaxBarWidth); err != nil {
		return err
	}
	if err := errors.ValidateFraction("renderer.item_margin", r.ItemMargin); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("renderer.minimum_bar_length", r.MinimumBarLength); err != nil {
		return err
	}
	if r.Gradient == "" || r.Gradient == "none" {
		return nil
	}
	if _, err := paint.ParseGradientType(r.Gradient); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "renderer.gradient")
	}
	return nil
}

func (a CategoryAxis) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"category_axis.lower_margin", a.LowerMargin},
		{"category_axis.upper_margin", a.UpperMargin},
		{"category_axis.category_margin", a.CategoryMargin},
	} {
		if err := errors.ValidateFraction(f.name, f.v); err != nil {
			return err
		}
	}
	if a.LowerMargin+a.UpperMargin+a.CategoryMargin >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "category_axis margins must leave room for categories")
	}
	return nil
}

func (a ValueAxis) validate() error {
	if err := errors.ValidateNonNegative("value_axis.lower_margin", a.LowerMargin); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("value_axis.upper_margin", a.UpperMargin); err != nil {
		return err
	}
	if (a.Min == nil) != (a.Max == nil) {
		return errors.New(errors.ErrCodeInvalidConfig, "value_axis.min and value_axis.max must be set together")
	}
	if a.Min != nil && *a.Min >= *a.Max {
		return errors.New(errors.ErrCodeInvalidConfig, "value_axis.min must be below value_axis.max")
	}
	if a.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "value_axis.ticks must not be negative")
	}
	return nil
}

func (s Style) validate() error {
	check := func(name, v string) error {
		if v == "" || v == "none" {
			return nil
		}
		if _, err := paint.ParseColor(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "style.%s", name)
		}
		return nil
	}
	for _, c := range s.Palette {
		if err := check("palette", c); err != nil {
			return err
		}
	}
	for series, c := range s.Series {
		if err := check("series."+series, c); err != nil {
			return err
		}
	}
	for name, v := range map[string]string{
		"outline":     s.Outline,
		"background":  s.Background,
		"plot_border": s.PlotBorder,
		"label_color": s.LabelColor,
	} {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return errors.ValidateNonNegative("style.outline_width", s.OutlineWidth)
}

func (l Labels) validate() error {
	if _, err := label.ParseAnchor(l.Position); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "labels.position")
	}
	if l.NegativePosition != MirrorPosition {
		if _, err := label.ParseAnchor(l.NegativePosition); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "labels.negative_position")
		}
	}
	if l.Decimals < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "labels.decimals must not be negative")
	}
	if l.URLPrefix != "" {
		if err := errors.ValidateURL(l.URLPrefix); err != nil && l.URLPrefix[0] != '/' {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "labels.url_prefix")
		}
	}
	return errors.ValidateNonNegative("labels.offset", l.Offset)
}

// validateGroups rejects unnamed groups and series listed under two groups.
func (c Chart) validateGroups() error {
	if c.DefaultGroup == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "default_group must not be empty")
	}
	owner := make(map[string]string)
	for i, g := range c.Groups {
		if g.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "group %d has no name", i+1)
		}
		for _, s := range g.Series {
			if prev, ok := owner[s]; ok && prev != g.Name {
				return errors.New(errors.ErrCodeInvalidConfig, "series %q is in groups %q and %q", s, prev, g.Name)
			}
			owner[s] = g.Name
		}
	}
	return nil
}
