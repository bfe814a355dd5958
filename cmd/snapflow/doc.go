// Command snapflow coordinates product photo capture sessions: it derives
// filenames from a catalog, places them on the clipboard, waits for the
// tethering software to write the photo, and stamps IPTC metadata on it.
package main
