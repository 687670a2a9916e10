/*
Package launcher resolves the home screen tile list.

For every installed app a route is looked for in three tiers: the app's
add_to_apps_screen hook, its first public workspace, and finally a page
named after the app. Apps without a route are left out. Logos declared
by hooks are checked against the app's public directory; otherwise the
images directory is searched for a conventional logo file.

The resolver only reads from its collaborators and keeps no state
between calls.
*/
package launcher
