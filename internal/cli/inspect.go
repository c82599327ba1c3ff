package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layerbox/pkg/container"
	"github.com/matzehuels/layerbox/pkg/export"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var showNames bool

	cmd := &cobra.Command{
		Use:   "inspect <container-file>",
		Short: "Show the contents of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], showNames)
		},
	}

	cmd.Flags().BoolVar(&showNames, "names", false, "list every layer name")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, showNames bool) error {
	logger := loggerFromContext(cmd.Context())
	f, err := container.Open(path)
	if err != nil {
		return err
	}
	logger.Debug("opened container", "path", path, "groups", len(f.Groups()))

	out := cmd.OutOrStdout()
	printTitle(out, filepath.Base(path))
	printKeyValue(out, "id", f.ID().String())
	printKeyValue(out, "created", f.CreatedAt().Format(time.RFC3339))
	printKeyValue(out, "limit", strconv.Itoa(f.Limit())+" bytes")

	for _, a := range f.Root().Attrs() {
		printKeyValue(out, a.Name, describeAttr(a))
	}
	if cfg, ok := f.Root().Attr(export.AttrModelConfig); ok {
		if m, err := export.DecodeManifest(cfg.Scalar()); err != nil {
			printError(out, "%s: %v", export.AttrModelConfig, err)
		} else {
			printKeyValue(out, "layers", strconv.Itoa(len(m.Config.Layers)))
		}
	}

	for _, g := range f.Groups() {
		printTitle(out, g.Name()+"/")
		for _, a := range g.Attrs() {
			printKeyValue(out, "  "+a.Name, describeAttr(a))
		}
	}

	g, ok := f.Group(export.GroupName)
	if !ok {
		printWarning(out, "no %s group", export.GroupName)
		return nil
	}
	names, err := container.LoadStrings(g, export.AttrLayerNames)
	if err != nil {
		printWarning(out, "%v", err)
		return nil
	}
	printKeyValue(out, export.AttrLayerNames, fmt.Sprintf("%d names", len(names)))
	if showNames {
		for _, n := range names {
			printFile(out, n)
		}
	}
	return nil
}

// describeAttr summarizes an attribute's shape, or shows short scalars.
func describeAttr(a *container.Attribute) string {
	if a.Kind == container.KindScalar {
		if v := a.Scalar(); len(v) <= 32 {
			return strconv.Quote(string(v))
		}
		return fmt.Sprintf("scalar, %d bytes", a.StoredSize())
	}
	return fmt.Sprintf("array[%d] × %d = %d bytes", len(a.Values), a.Width, a.StoredSize())
}
