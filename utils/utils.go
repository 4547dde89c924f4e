package utils

import (
    "net/url"
    "strings"
)

func ServiceHubURL(serviceSlug string) string {
    return "/services/" + serviceSlug + "/"
}

func LocationHubURL(locationSlug string) string {
    return "/locations/" + locationSlug + "/"
}

// ServiceLocationURL is the path of a generated service/location page. It has no
// trailing slash, matching the file layout services/<service>/<location>.html.
func ServiceLocationURL(serviceSlug, locationSlug string) string {
    return "/services/" + serviceSlug + "/" + locationSlug
}

// IsInternalURL reports whether rawURL is a site-relative page link worth
// recording in the link graph.
func IsInternalURL(rawURL string) bool {
    if rawURL == "" || !strings.HasPrefix(rawURL, "/") || strings.HasPrefix(rawURL, "//") {
        return false
    }

    u, err := url.Parse(rawURL)
    if err != nil {
        return false
    }
    if u.Scheme != "" || u.Host != "" {
        return false
    }

    // Filter out assets
    excludePatterns := []string{
        ".css", ".js", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
        ".pdf", ".zip", ".xml", ".json",
    }

    lowerPath := strings.ToLower(u.Path)
    for _, pattern := range excludePatterns {
        if strings.HasSuffix(lowerPath, pattern) {
            return false
        }
    }

    return true
}

// AbsoluteURL joins a site-relative path onto baseURL.
func AbsoluteURL(baseURL, path string) string {
    base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
    if err != nil {
        return strings.TrimRight(baseURL, "/") + path
    }

    ref, err := url.Parse(path)
    if err != nil {
        return strings.TrimRight(baseURL, "/") + path
    }

    resolved := base.ResolveReference(ref)
    resolved.Fragment = ""
    return resolved.String()
}
