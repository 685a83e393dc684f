/*
Package builder turns an authored config.Model into an expanded
network.Network. It is the bridge between the static model produced by a
config.Loader and the macro engine in the 'macro' package.

Construction is a three-phase process:

 1. Define Seeding: values passed on the command line are added to the root
    expansion context first and win over file defines of the same name.
    File defines are then expanded in order, each one seeing those before
    it. A define with several alternatives holds their escaped, comma joined
    text in field 0 and one alternative per following field.

 2. Node Creation: every node ID is expanded into its alternatives. Each
    alternative is pushed as the current expansion of a child context in
    which the node's properties are expanded, so `@0` is the node ID and
    `@1` the first brace group.

 3. Edge Creation: edge IDs are expanded the same way. From and To are
    expanded in the edge's context; every combination of the two becomes an
    edge, suffixed with `_N` when there is more than one. Both endpoints
    must name existing nodes.

Child contexts share the root define table, so counters such as `@[seq+]`
advance across the whole model in source order.

Every failure is reported as an hcl.Diagnostic pointing at the authored
text that caused it; a phase with errors stops the build.
*/
package builder
