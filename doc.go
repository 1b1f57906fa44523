/*
Package strata is a layered scene-description toolkit: a composed,
hierarchical document assembled from an ordered stack of authoring
layers, with transactional, undoable editing commands.

# Concept

A stage composes layers by strength order; each layer may author
opinions (specs) for any prim in the hierarchy. Editing commands mutate
exactly one layer and record enough state to reproduce their inverse, so
the host undo engine can move the document backward and forward through
history. External identity handles ("items") expire whenever the scene
description they point at is removed, and are re-minted after every
structural change.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/strataforge/strata"
		"github.com/strataforge/strata/pkg/domain"
		"github.com/strataforge/strata/pkg/layer"
		"github.com/strataforge/strata/pkg/stage"
	)

	func main() {
		l := layer.New("shot.yaml")
		spec := domain.NewPrimSpec(domain.SpecifierDef)
		spec.TypeName = "Cube"
		if err := l.SetSpecAt(domain.MustPath("/World/Cube"), spec); err != nil {
			log.Fatal(err)
		}

		st, err := stage.New([]*layer.Layer{l})
		if err != nil {
			log.Fatal(err)
		}

		session := strata.NewSession(st)
		renamed, err := session.Rename("/World/Cube", "Cylinder")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("renamed to", renamed)

		if err := session.Undo(); err != nil {
			log.Fatal(err)
		}
	}

The cmd/strata CLI drives the same session over a scene directory, and
the HTTP and MCP adapters expose it to remote hosts.
*/
package strata
