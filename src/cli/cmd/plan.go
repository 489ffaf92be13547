package cmd

import (
	"strconv"

	"github.com/sofmeright/fortwasm/src/output"
	"github.com/sofmeright/fortwasm/src/session"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resolved paths and container command without running it",
	Args:  cobra.NoArgs,
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	sess, err := session.New(cfg.Paths)
	if err != nil {
		return err
	}
	inv := sess.Invocation(cfg.Toolchain, cfg.Build)

	sec := output.NewSection(cmd.OutOrStdout(), "Plan", output.UseColor())
	sec.KV("base", sess.BaseDir)
	sec.KV("build", sess.BuildDir)
	sec.KV("cache", sess.CacheDir)
	sec.KV("log", sess.LogPath)
	sec.KV("identity", formatIdentity(sess.UID, sess.GID))
	sec.KV("runtime", inv.Runtime().Name)
	if t := cfg.Build.Timeout.Std(); t > 0 {
		sec.KV("timeout", t.String())
	}
	sec.Separator()
	sec.Row("%s", inv.Description())
	sec.Row("%s", inv.String())
	sec.Close()
	return nil
}

func formatIdentity(uid, gid int) string {
	return strconv.Itoa(uid) + ":" + strconv.Itoa(gid)
}
