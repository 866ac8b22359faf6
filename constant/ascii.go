package constant

// AsciiArtLogo is the banner shown above the root command help.
const AsciiArtLogo = `
 __   __ _     _              __  _  _
 \ \ / /(_) __| | ___  ___   / _|| |(_)__  __
  \ V / | |/ _' |/ -_)/ _ \ |  _|| || |\ \/ /
   \_/  |_|\__,_|\___|\___/ |_|  |_||_|/_/\_\
`
