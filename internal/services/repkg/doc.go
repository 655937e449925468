// Package repkg wraps the external RePKG command line tool, which unpacks
// Wallpaper Engine .pkg archives and converts their tex assets.
package repkg
