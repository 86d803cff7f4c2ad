// Package pkg provides the libraries behind gradslides, the graduation
// ceremony slide generator.
//
// # Overview
//
// gradslides reads graduate tables, groups the graduates the way they sit
// in the hall and writes one slide deck per group: a slide per graduate
// with photo, name, programme, student ID, GPA, score and advisors on the
// background for their honors tier. The pkg directory is organized into
// four areas:
//
//  1. Input - tables, records and lookups ([io], [roster], [lookup])
//  2. Rules - seat codes, honors tiers and grouping ([seat], [honors], [partition])
//  3. Slides - geometry, composition and output ([layout], [slide], [render])
//  4. Orchestration - the run itself ([deck], [config], [observability])
//
// # Architecture
//
// The data flow of a run:
//
//	xlsx / csv tables
//	         ↓
//	    [roster] package (records, sessions, GPA formatting)
//	         ↓
//	    [partition] package (summa first, then programme and side)
//	         ↓
//	    [slide] package (background, photo, text boxes)
//	         ↓
//	    [render/sink] package (PPTX, JSON, SVG, PNG, PDF)
//
// # Quick Start
//
// Generate every deck described by a configuration file:
//
//	cfg, _, err := config.Load("gradslides.toml")
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.Options()
//	if err != nil {
//	    return err
//	}
//	res, err := deck.NewRunner(logger, nil).Run(ctx, opts)
//
// # Main Packages
//
// [seat] - Parses seat codes such as "12.3.L" into sortable keys.
//
// [honors] - Classifies free-text honors values into three tiers and maps
// each tier to a background template.
//
// [roster] - Converts table rows into graduate records, resolving header
// aliases and the ceremony session.
//
// [lookup] - Photo lookup on disk and the optional employer table.
//
// [partition] - Groups records into decks and orders the slides.
//
// [layout] - Slide geometry presets and unit conversion to EMU.
//
// [slide] - Composes one slide per graduate into a format-neutral deck.
//
// [render] - Output sinks and PDF conversion.
//
// [deck] - The pipeline runner: load, partition, compose, write, manifest.
//
// [config] - gradslides.toml loading, defaults and validation.
//
// [observability] - Pipeline event hooks.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/deck/...               # Specific package
//	go test -run Example ./pkg/...       # Examples only
package pkg
