// Package collector drives a browser session against the running form
// variants and records timing and memory samples.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbench/pkg/metrics"
	"github.com/goliatone/go-formbench/pkg/model"
)

// Test names double as persistence categories: one batch file per name.
const (
	TestInitialLoad = "initial-load"
	TestFormRender  = "form-render"
	TestInteraction = "typing"
	TestValidation  = "blur-validation"
	TestSubmission  = "form-submission"
)

// Option customises a collector.
type Option func(*Collector)

// WithLogger injects a configured logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Collector) {
		if log != nil {
			c.log = log
		}
	}
}

// WithWaitTimeout bounds every UI-signal wait except validation, which uses
// the fixed sentinel window.
func WithWaitTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.waitTimeout = d
		}
	}
}

// WithProgress toggles the console progress bar.
func WithProgress(enabled bool) Option {
	return func(c *Collector) {
		c.showProgress = enabled
	}
}

// WithRunID pins the run identifier instead of minting one.
func WithRunID(id string) Option {
	return func(c *Collector) {
		if id != "" {
			c.runID = id
		}
	}
}

// Collector runs measurement scenarios against one browser session. All
// scenarios execute sequentially; a parallel run would contaminate the
// timings being compared.
type Collector struct {
	baseURL      string
	store        *metrics.Store
	log          *logrus.Logger
	runID        string
	waitTimeout  time.Duration
	showProgress bool

	samples []metrics.Sample
}

// New builds a collector targeting a running formbench server.
func New(baseURL string, store *metrics.Store, options ...Option) (*Collector, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("collector: base URL is required")
	}
	if store == nil {
		return nil, fmt.Errorf("collector: metrics store is required")
	}

	c := &Collector{
		baseURL:     baseURL,
		store:       store,
		log:         logrus.New(),
		runID:       uuid.NewString(),
		waitTimeout: 10 * time.Second,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// RunID reports the identifier stamped on every batch this run writes.
func (c *Collector) RunID() string {
	return c.runID
}

// Run executes the plan against a single browser session and persists the
// recorded samples as one batch per test name. A failed wait is terminal for
// its measurement; only validation substitutes the sentinel and continues.
func (c *Collector) Run(ctx context.Context, plan Plan) error {
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var bar *progressbar.ProgressBar
	if c.showProgress {
		bar = progressbar.NewOptions(plan.Measurements(),
			progressbar.OptionSetDescription("[formbench]"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
		)
	}
	step := func() {
		if bar != nil {
			bar.Add(1)
		}
	}

	for _, variant := range plan.Variants {
		if err := c.measureInitialLoad(browserCtx, variant); err != nil {
			return err
		}
		step()

		for _, scenario := range plan.Scenarios {
			c.log.WithFields(logrus.Fields{
				"variant":  variant,
				"scenario": scenario.Name,
				"fields":   scenario.Config.TotalFields(),
			}).Info("running scenario")

			form := model.Build(scenario.Config)

			if err := c.measureFormRender(browserCtx, variant, scenario, form); err != nil {
				return err
			}
			step()
			if err := c.measureInteraction(browserCtx, variant, scenario, form); err != nil {
				return err
			}
			step()
			if err := c.measureValidation(browserCtx, variant, scenario, form); err != nil {
				return err
			}
			step()
			if err := c.measureSubmission(browserCtx, variant, scenario, form); err != nil {
				return err
			}
			step()
		}
	}

	return c.flush()
}

func (c *Collector) record(sample metrics.Sample) {
	c.samples = append(c.samples, sample)
}

// flush groups the in-memory samples by test name and writes one batch file
// per group.
func (c *Collector) flush() error {
	groups := map[string][]metrics.Sample{}
	var order []string
	for _, sample := range c.samples {
		if _, seen := groups[sample.TestName]; !seen {
			order = append(order, sample.TestName)
		}
		groups[sample.TestName] = append(groups[sample.TestName], sample)
	}

	for _, name := range order {
		path, err := c.store.Write(metrics.Batch{
			Category:   name,
			RunID:      c.runID,
			RecordedAt: time.Now(),
			Samples:    groups[name],
		})
		if err != nil {
			return err
		}
		c.log.WithFields(logrus.Fields{
			"category": name,
			"samples":  len(groups[name]),
			"path":     path,
		}).Info("batch written")
	}
	return nil
}

func (c *Collector) wait(parent context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (c *Collector) measureInitialLoad(ctx context.Context, variant string) error {
	start := time.Now()
	err := c.wait(ctx, c.waitTimeout,
		chromedp.Navigate(formURL(c.baseURL, variant, model.FieldTypeConfig{Text: 1})),
		chromedp.WaitVisible(containerSelector(variant)),
	)
	if err != nil {
		return fmt.Errorf("collector: initial load of %s variant: %w", variant, err)
	}
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	var stats pageStats
	if err := c.wait(ctx, c.waitTimeout, chromedp.Evaluate(pageStatsScript, &stats)); err != nil {
		return fmt.Errorf("collector: read page stats: %w", err)
	}

	c.record(metrics.Sample{
		Timestamp:   time.Now(),
		TestName:    TestInitialLoad,
		Variant:     variant,
		Config:      model.FieldTypeConfig{Text: 1},
		TotalFields: 1,
		Metrics: map[string]float64{
			metrics.MetricLoadTime:         elapsed,
			metrics.MetricFirstPaint:       stats.FirstPaint,
			metrics.MetricFirstContentful:  stats.FirstContentfulPaint,
			metrics.MetricDOMContentLoaded: stats.DOMContentLoaded,
		},
	})
	return nil
}

func (c *Collector) measureFormRender(ctx context.Context, variant string, scenario Scenario, form model.FormModel) error {
	start := time.Now()
	actions := []chromedp.Action{
		chromedp.Navigate(formURL(c.baseURL, variant, scenario.Config)),
		chromedp.WaitVisible(containerSelector(variant)),
	}
	if len(form.Fields) > 0 {
		actions = append(actions, chromedp.WaitVisible(fieldInputSelector(form.Fields[len(form.Fields)-1].Name)))
	}
	if err := c.wait(ctx, c.waitTimeout, actions...); err != nil {
		return fmt.Errorf("collector: render %s/%s: %w", variant, scenario.Name, err)
	}
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	var stats pageStats
	if err := c.wait(ctx, c.waitTimeout, chromedp.Evaluate(pageStatsScript, &stats)); err != nil {
		return fmt.Errorf("collector: read page stats: %w", err)
	}

	c.record(metrics.Sample{
		Timestamp:   time.Now(),
		TestName:    TestFormRender,
		Variant:     variant,
		Config:      scenario.Config,
		TotalFields: len(form.Fields),
		Metrics: map[string]float64{
			metrics.MetricRenderTime: elapsed,
			metrics.MetricHeapUsed:   stats.HeapUsed,
			metrics.MetricDOMNodes:   stats.DOMNodes,
		},
		Details: fmt.Sprintf("%d fields (%s)", len(form.Fields), scenario.Name),
	})
	return nil
}

func (c *Collector) measureInteraction(ctx context.Context, variant string, scenario Scenario, form model.FormModel) error {
	field, ok := firstFieldOfType(form, model.FieldTypeText)
	if !ok {
		return nil
	}

	start := time.Now()
	err := c.wait(ctx, c.waitTimeout,
		chromedp.SendKeys(fieldInputSelector(field.Name), SyntheticText),
		chromedp.Sleep(50*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("collector: interaction %s/%s: %w", variant, scenario.Name, err)
	}
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	c.record(metrics.Sample{
		Timestamp:   time.Now(),
		TestName:    TestInteraction,
		Variant:     variant,
		Config:      scenario.Config,
		TotalFields: len(form.Fields),
		Metrics: map[string]float64{
			metrics.MetricInteractionTime: elapsed,
		},
	})
	return nil
}

// measureValidation clears the first text field to force an invalid state and
// waits for the error indicator. A missed wait records the sentinel instead
// of failing the scenario.
func (c *Collector) measureValidation(ctx context.Context, variant string, scenario Scenario, form model.FormModel) error {
	field, ok := firstFieldOfType(form, model.FieldTypeText)
	if !ok {
		return nil
	}

	start := time.Now()
	var ran bool
	err := c.wait(ctx, metrics.ValidationTimeoutSentinel*time.Millisecond,
		chromedp.Evaluate(setValueScript(field.Name, ""), &ran),
		chromedp.WaitVisible(errorSelector(field.Name)),
	)

	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		elapsed = metrics.ValidationTimeoutSentinel
		c.log.WithFields(logrus.Fields{
			"variant":  variant,
			"scenario": scenario.Name,
		}).Warn("validation indicator never appeared, recording sentinel")
	default:
		return fmt.Errorf("collector: validation %s/%s: %w", variant, scenario.Name, err)
	}

	c.record(metrics.Sample{
		Timestamp:   time.Now(),
		TestName:    TestValidation,
		Variant:     variant,
		Config:      scenario.Config,
		TotalFields: len(form.Fields),
		Metrics: map[string]float64{
			metrics.MetricValidationTime: elapsed,
		},
	})
	return nil
}

func (c *Collector) measureSubmission(ctx context.Context, variant string, scenario Scenario, form model.FormModel) error {
	if len(form.Fields) == 0 {
		return nil
	}

	fill := make([]chromedp.Action, 0, len(form.Fields)+2)
	for _, field := range form.Fields {
		var ran bool
		fill = append(fill, chromedp.Evaluate(setValueScript(field.Name, syntheticValue(field)), &ran))
	}

	start := time.Now()
	actions := append(fill,
		chromedp.Click(submitSelector),
		chromedp.WaitVisible(successSelector),
	)
	if err := c.wait(ctx, c.waitTimeout, actions...); err != nil {
		return fmt.Errorf("collector: submission %s/%s: %w", variant, scenario.Name, err)
	}
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6

	c.record(metrics.Sample{
		Timestamp:   time.Now(),
		TestName:    TestSubmission,
		Variant:     variant,
		Config:      scenario.Config,
		TotalFields: len(form.Fields),
		Metrics: map[string]float64{
			metrics.MetricSubmissionTime: elapsed,
		},
	})
	return nil
}
