package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vtex/go-resconfig/folderconfig"
	"github.com/vtex/go-resconfig/resindex"
	"github.com/vtex/go-resconfig/server"
)

func parseCmd() *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "parse <folder>...",
		Short: "Print the qualifiers of resource folder names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, name := range args {
				config, ok := folderconfig.FromFolderName(name)
				if !ok {
					fmt.Fprintf(out, "%s: invalid\n", name)
					failed++
					continue
				}
				if normalize {
					config.Normalize()
				}
				fmt.Fprintf(out, "%s: %s\n", name, config)
				for _, q := range config.Qualifiers() {
					fmt.Fprintf(out, "  %-20s %s\n", q.Axis(), q.FolderSegment())
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d folder names are invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Add the platform version implied by the qualifiers")
	return cmd
}

// namedConfig is a candidate given on the command line.
type namedConfig struct {
	name   string
	config *folderconfig.Configuration
}

func (n *namedConfig) Configuration() *folderconfig.Configuration {
	return n.config
}

func matchCmd() *cobra.Command {
	var reference string

	cmd := &cobra.Command{
		Use:   "match --reference <qualifiers> <folder>...",
		Short: "Print the folder that best matches a device configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := referenceConfig(reference)
			if err != nil {
				return err
			}

			candidates := make([]folderconfig.Configurable, len(args))
			for i, name := range args {
				config, ok := folderconfig.FromFolderName(name)
				if !ok {
					return errors.Errorf("Invalid resource folder name %q", name)
				}
				candidates[i] = &namedConfig{name: name, config: config}
			}

			match := ref.FindMatchingConfigurable(candidates)
			if match == nil {
				return errors.Errorf("No folder matches %q", reference)
			}
			fmt.Fprintln(cmd.OutOrStdout(), match.(*namedConfig).name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Qualifiers of the device, such as en-rUS-land-hdpi-v21")
	return cmd
}

func indexCmd() *cobra.Command {
	var (
		reference string
		typeName  string
		file      string
		ignore    []string
	)

	cmd := &cobra.Command{
		Use:   "index <resdir>",
		Short: "Resolve the best folder of a resource directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := resindex.ParseFolderType(typeName)
			if !ok {
				return errors.Errorf("Unknown resource type %q", typeName)
			}
			ref, err := referenceConfig(reference)
			if err != nil {
				return err
			}

			if err := resindex.ValidateIgnore(ignore); err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			index := resindex.New(resindex.WithIgnore(ignore...))
			if _, err := index.ScanDir(ctx, args[0]); err != nil {
				return err
			}

			var folder *resindex.Folder
			if file != "" {
				folder = index.FindMatchingFile(typ, file, ref)
			} else {
				folder = index.FindMatchingFolder(typ, ref)
			}
			if folder == nil {
				return errors.Errorf("No %s folder matches %q", typ, reference)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", folder.Name, strings.Join(folder.Files(), " "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "Qualifiers of the device")
	cmd.Flags().StringVarP(&typeName, "type", "t", "values", "Resource type")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Only consider folders holding this file")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Glob patterns of <folder>/<file> paths to leave out")
	return cmd
}

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadFromFile(configPath)
				if err != nil {
					return err
				}
				config = loaded
			}
			config.Version = version

			ctx, cancel := signalContext()
			defer cancel()
			s, err := server.NewFromConfig(ctx, config)
			if err != nil {
				return err
			}
			return s.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	return cmd
}

func referenceConfig(reference string) (*folderconfig.Configuration, error) {
	ref, err := folderconfig.Parse(reference)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid reference")
	}
	return ref, nil
}
