package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paso-sh/paso/pkg/plan"
	"github.com/paso-sh/paso/pkg/step"
)

var planYAML bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print every stage and step of the installation plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if planYAML {
			return printPlanYAML()
		}
		for _, root := range plan.Stages() {
			step.Walk(root, func(s *step.Step, depth int) {
				line := strings.Repeat("  ", depth) + s.Title
				if s.When != "" {
					line += fmt.Sprintf("  (when: %s)", s.When)
				}
				fmt.Println(line)
			})
			fmt.Println()
		}
		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planYAML, "yaml", false, "emit the plan as YAML")
	rootCmd.AddCommand(planCmd)
}

// planNode is the YAML shape of one step; leaves have no Steps.
type planNode struct {
	Name  string     `yaml:"name"`
	Title string     `yaml:"title"`
	When  string     `yaml:"when,omitempty"`
	Guide string     `yaml:"guide,omitempty"`
	Steps []planNode `yaml:"steps,omitempty"`
}

func toPlanNode(s *step.Step) planNode {
	n := planNode{Name: s.Name, Title: s.Title, When: s.When, Guide: s.Guide}
	for _, c := range s.Children {
		n.Steps = append(n.Steps, toPlanNode(c))
	}
	return n
}

func printPlanYAML() error {
	var stages []planNode
	for _, root := range plan.Stages() {
		stages = append(stages, toPlanNode(root))
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string][]planNode{"stages": stages})
}
