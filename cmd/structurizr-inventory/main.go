package main

import (
	"fmt"
	"os"

	api "github.com/deepthought-solutions/structurizr-inventory/api/inventory"
	"github.com/deepthought-solutions/structurizr-inventory/internal/parser"
	"github.com/deepthought-solutions/structurizr-inventory/internal/server"
	"github.com/deepthought-solutions/structurizr-inventory/internal/utils"
	"github.com/deepthought-solutions/structurizr-inventory/pkg/inventory"
	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	serviceName = "STRUCTURIZR_INVENTORY"
)

func main() {
	app := &cli.App{
		Name:  "structurizr-inventory",
		Usage: "generate an ansible inventory from a structurizr workspace export",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "d",
				Usage: "add debug logs",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("d") {
				log.SetLevel(log.DebugLevel)
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "print the full inventory",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("list: config_file")
					}

					inv := buildInventory(c.Args().First())
					printJSON(inv.ExportList())

					return nil
				},
			},
			{
				Name:  "host",
				Usage: "print the variables of one host",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						log.Fatal("host: config_file hostname")
					}

					inv := buildInventory(c.Args().First())
					printJSON(inv.ExportHost(c.Args().Get(1)))

					return nil
				},
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Usage:   "serve the inventory over http",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						log.Fatal("serve: config_file")
					}

					opts := loadOptions(c.Args().First())

					err := server.InitHandlers(opts)
					if err != nil {
						log.Fatal(err)
					}

					utils.StartServer(serviceName, opts.ServePort, api.PrefixPath, server.Routes)

					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func loadOptions(configPath string) *parser.Options {
	opts, err := parser.LoadOptions(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return opts
}

func buildInventory(configPath string) *inventory.Inventory {
	opts := loadOptions(configPath)

	inv := inventory.New()

	err := parser.New(opts, inv).Parse()
	if err != nil {
		log.Fatal(err)
	}

	return inv
}

func printJSON(content interface{}) {
	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		panic(err)
	}

	fmt.Println(string(out))
}
