package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/cli/config"
	"github.com/secmon-lab/allegro/pkg/usecase"
	"github.com/secmon-lab/allegro/pkg/utils/logging"
	"github.com/secmon-lab/allegro/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdAudits() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:    "audits",
		Aliases: []string{"a"},
		Usage:   "List audits stored in the configured repository",
		Flags:   repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			uc, err := usecase.New(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			audits, err := uc.Audit.List(ctx)
			if err != nil {
				return err
			}

			if len(audits) == 0 {
				logger.Info("No audits found")
				return nil
			}

			for _, audit := range audits {
				logger.Info("Audit",
					"id", audit.ID,
					"system_name", audit.SystemName,
					"audit_date", audit.AuditDate,
					"risk_score", audit.RiskScore,
					"risk_level", audit.RiskLevel,
					"compliance_score", audit.ComplianceScore,
				)
			}

			return nil
		},
	}
}
