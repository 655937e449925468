// Command repkg-gui is the command line surface of the workshop catalog
// pipeline: scanning the Wallpaper Engine workshop directory, inspecting
// bundles, extracting them through RePKG, and browsing extraction history.
package main
