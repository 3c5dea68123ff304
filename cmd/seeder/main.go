package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/glassmatch"
)

// sampleCSV is a small built-in catalog for local testing. Rows share an
// external_id to land in the same compatibility group; the Universal groups
// carry the shared brand tag and therefore rank first in every result.
var sampleCSV = `external_id,group_name,brands,description,glass_name,aliases
G0001,HOCO A-series 6.5,HOCO,Full-glue tempered glass with 2.5D edge for 6.5-inch A-series panels.,Samsung Galaxy A13,a13|galaxy a13|sm-a135
G0001,HOCO A-series 6.5,HOCO,Full-glue tempered glass with 2.5D edge for 6.5-inch A-series panels.,Samsung Galaxy A13 5G,a13 5g|sm-a136
G0001,HOCO A-series 6.5,HOCO,Full-glue tempered glass with 2.5D edge for 6.5-inch A-series panels.,Samsung Galaxy A23,a23|galaxy a23
G0002,Borofone Redmi flat,Borofone,Flat tempered glass for Redmi entry models.,Xiaomi Redmi 9A,redmi 9a|9a
G0002,Borofone Redmi flat,Borofone,Flat tempered glass for Redmi entry models.,Xiaomi Redmi 9C,redmi 9c|9c
G0002,Borofone Redmi flat,Borofone,Flat tempered glass for Redmi entry models.,Xiaomi Redmi 10A,redmi 10a|10a
G0003,Universal 6.1,"Shared, Budget",Universal protector sized for most 6.1-inch flat displays.,Universal 6.1 flat,universal 6.1|6.1
G0004,Universal 6.5,"Shared, Budget",Universal protector sized for most 6.5-inch flat displays.,Universal 6.5 flat,universal 6.5|6.5|a13 compatible
G0005,iPhone 13 family,Apple,Edge-to-edge glass for the iPhone 13 panel family.,iPhone 13,iphone13
G0005,iPhone 13 family,Apple,Edge-to-edge glass for the iPhone 13 panel family.,iPhone 13 Pro,iphone 13 pro
G0005,iPhone 13 family,Apple,Edge-to-edge glass for the iPhone 13 panel family.,iPhone 14,iphone14
`

var (
	dbPath      = flag.String("db", "./glassmatch_db", "database directory")
	csvFileName = flag.String("src", "", "CSV file to import instead of the built-in sample")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := glassmatch.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	imp, err := db.NewImporter()
	if err != nil {
		panic(err)
	}
	defer imp.Release()

	ctx := context.Background()

	// Determine source of seed data
	if *csvFileName != "" {
		f, err := os.Open(*csvFileName)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		result, err := imp.ImportCSV(ctx, f)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded from file", "src", *csvFileName,
			"groups", result.GroupsCreated, "glasses", result.GlassesCreated, "aliases", result.AliasesWritten)
		return
	}

	result, err := imp.ImportCSV(ctx, strings.NewReader(sampleCSV))
	if err != nil {
		panic(err)
	}
	slog.Info("seeded sample catalog",
		"groups", result.GroupsCreated, "glasses", result.GlassesCreated, "aliases", result.AliasesWritten)
}
