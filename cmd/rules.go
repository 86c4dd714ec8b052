package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"conform.dev/pkg/conform/internal/controller"
	"conform.dev/pkg/conform/internal/rules"
)

var rulesProfileFlag string

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue with effective severities",
		Long:  "List every known rule with its effective severity, target node kinds and enabled state under the current configuration.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()

			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			cfg, err := ruleConfig(rulesProfileFlag)
			if err != nil {
				return err
			}

			infos, err := ruleCatalogue(cfg)
			if err != nil {
				return err
			}

			return ui.DisplayRuleCatalogue(ctx, infos)
		},
	}

	cmd.Flags().StringVar(&rulesProfileFlag, profileFlagName, "", "path to a rule profile file (yaml)")

	return cmd
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

// ruleCatalogue builds the full catalogue, including disabled rules. The
// catalogue set is constructed without the disabled list so every rule's
// effective severity and targets are still resolvable.
func ruleCatalogue(cfg rules.Config) ([]controller.RuleInfo, error) {
	catalogueCfg := cfg
	catalogueCfg.Disabled = nil

	ruleSet, err := rules.NewRuleSet(catalogueCfg)
	if err != nil {
		return nil, err
	}

	disabled := make(map[string]struct{}, len(cfg.Disabled))
	for _, id := range cfg.Disabled {
		disabled[id] = struct{}{}
	}

	infos := make([]controller.RuleInfo, 0, len(ruleSet.Rules()))

	for _, rule := range ruleSet.Rules() {
		targets := make([]string, 0, len(rule.Targets()))
		for _, kind := range rule.Targets() {
			targets = append(targets, kind.String())
		}

		_, isDisabled := disabled[rule.ID()]

		infos = append(infos, controller.RuleInfo{
			ID:       rule.ID(),
			Severity: rule.Severity(),
			Targets:  targets,
			Disabled: isDisabled,
		})
	}

	return infos, nil
}
