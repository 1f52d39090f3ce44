package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenwatt/intake/pkg/anchor"
	"github.com/greenwatt/intake/pkg/pdffill"
)

// Processor fills agreement documents for submissions. It owns the anchor
// registry and the agreement catalog and delegates drawing to pdffill.
type Processor struct {
	cfg      pdffill.Config
	registry *anchor.Registry
	catalog  AgreementCatalog
	now      func() time.Time
}

// Result describes one generated document.
type Result struct {
	Template     string
	OutputPath   string
	SubmissionID string
	POAID        string
}

// NewProcessor builds a processor and registers the signature font. A
// missing font is not fatal; it is logged and signatures render in the
// fallback face.
func NewProcessor(cfg pdffill.Config, registry *anchor.Registry, catalog AgreementCatalog) *Processor {
	pdffill.RegisterSignatureFont(cfg.FontDir, cfg.SignatureFont, cfg.Logger)
	return &Processor{
		cfg:      cfg,
		registry: registry,
		catalog:  catalog,
		now:      time.Now,
	}
}

func (p *Processor) logger() io.Writer {
	if p.cfg.Logger != nil {
		return p.cfg.Logger
	}
	return os.Stdout
}

// ProcessTemplate fills a single template for the submission. Identifiers
// are minted on first use and reused afterward, so every document of one
// submission carries the same submission id.
func (p *Processor) ProcessTemplate(sub *Submission, ocr OCRFields, templateFile, runTag string) (Result, error) {
	now := p.now()
	if sub.SubmissionID == "" {
		sub.SubmissionID = NewSubmissionID(now)
	}
	if anchor.IsPOATemplate(templateFile) && sub.POAID == "" {
		sub.POAID = NewPOAID(now)
	}
	if sub.GenerationTimestamp == "" {
		sub.GenerationTimestamp = GenerationTimestamp(now)
	}
	if runTag == "" {
		runTag = sub.SubmissionID
	}

	anchors, ok := p.registry.ForTemplate(templateFile)
	if !ok {
		return Result{}, fmt.Errorf("template %s: %w", templateFile, pdffill.ErrNoAnchorConfig)
	}

	m := minted{
		submissionID: sub.SubmissionID,
		poaID:        sub.POAID,
		generatedAt:  sub.GenerationTimestamp,
		today:        now.Format("01/02/2006"),
	}
	values := bindFields(anchors, sub, ocr, m)

	templatePath := filepath.Join(p.cfg.TemplatesDir, templateFile)
	outputName := fmt.Sprintf("%s_%s.pdf", strings.TrimSuffix(templateFile, ".pdf"), runTag)
	outputPath := filepath.Join(p.cfg.TempDir, outputName)

	if err := os.MkdirAll(p.cfg.TempDir, 0o750); err != nil {
		return Result{}, fmt.Errorf("failed to create output dir %s: %w", p.cfg.TempDir, err)
	}
	if err := pdffill.Fill(templatePath, outputPath, anchors, values, p.cfg); err != nil {
		return Result{}, err
	}

	abs, err := filepath.Abs(outputPath)
	if err != nil {
		abs = outputPath
	}
	return Result{
		Template:     templateFile,
		OutputPath:   abs,
		SubmissionID: sub.SubmissionID,
		POAID:        sub.POAID,
	}, nil
}

// SelectAgreement resolves the subscription agreement template for the
// submission from the catalog.
func (p *Processor) SelectAgreement(sub *Submission) (string, error) {
	return p.catalog.Lookup(sub.DeveloperAssigned, sub.UtilityProvider, sub.AccountType)
}

// ProcessSubmission generates the full document set for a submission: the
// power of attorney, the developer's subscription agreement, and the agency
// agreement. A missing agency agreement template is skipped with a log
// line; the other two documents are required.
func (p *Processor) ProcessSubmission(sub *Submission, ocr OCRFields, runTag string) ([]Result, error) {
	var results []Result

	poa, err := p.ProcessTemplate(sub, ocr, DefaultPOATemplate, runTag)
	if err != nil {
		return nil, fmt.Errorf("power of attorney: %w", err)
	}
	results = append(results, poa)

	agreementFile, err := p.SelectAgreement(sub)
	if err != nil {
		return nil, err
	}
	agreement, err := p.ProcessTemplate(sub, ocr, agreementFile, runTag)
	if err != nil {
		return nil, fmt.Errorf("subscription agreement: %w", err)
	}
	results = append(results, agreement)

	agency, err := p.ProcessTemplate(sub, ocr, DefaultAgencyTemplate, runTag)
	if err != nil {
		if errors.Is(err, pdffill.ErrTemplateNotFound) {
			fmt.Fprintf(p.logger(), "agency agreement template missing, skipping: %v\n", err)
			return results, nil
		}
		return nil, fmt.Errorf("agency agreement: %w", err)
	}
	results = append(results, agency)

	return results, nil
}
