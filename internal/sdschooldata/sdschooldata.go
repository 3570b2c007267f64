// Package sdschooldata declares the surface the sdschooldata wrapper
// promises: an enrollment fetcher, a year listing and a version string.
package sdschooldata

import "github.com/almartin82/sdschooldata/internal/surface"

// Descriptors is the Go spelling of the wrapper surface.
func Descriptors() []surface.Descriptor {
	return []surface.Descriptor{
		surface.Func("FetchEnr"),
		surface.Func("GetAvailableYears"),
		surface.Value("Version", surface.IsString),
	}
}

// BindingDescriptors is the same surface as the Python binding names it.
func BindingDescriptors() []surface.Descriptor {
	return []surface.Descriptor{
		surface.Func("fetch_enr"),
		surface.Func("get_available_years"),
		surface.Value("__version__", surface.IsString),
	}
}
