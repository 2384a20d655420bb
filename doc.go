/*
Package mosaic is a state-management engine for composable, data-bound
dashboards.

A dashboard is a tree of widgets (layout containers plus data-bound views)
edited at runtime. Mosaic owns the parts of that problem with real
invariants: the copy-on-write configuration tree, a branching history of
every edit (a full version tree, not a linear undo stack), the layout
algorithm that positions history nodes for visualization, and the
request-coalescing cache behind data-bound views. Rendering, property
editors and asset handling stay in the host.

# Usage

	eng, err := mosaic.New(
		mosaic.WithFetcher(feed.New("https://api.example.com/v1")),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Edit: every committed mutation becomes a history snapshot.
	tree, _ := eng.CurrentTree()
	tree, _ = eng.AddChild(tree.ID)

	// Navigate history.
	eng.Undo()
	eng.Redo()

	// Data for a view node: fetch (coalesced), then filter.
	records, err := eng.RecordsForView(ctx, "w000002")

Mutations referencing a missing id return the tree unchanged; a mutation
that reproduces the current state is deduplicated and records nothing.
Undoing and then editing again branches the history; every state ever
reached stays reachable via Jump for the life of the session.
*/
package mosaic
