package container

import (
	"os"
	"testing"
)

func TestIsInKubernetesPod(t *testing.T) {
	original, hadOriginal := os.LookupEnv("KUBERNETES_SERVICE_HOST")
	t.Cleanup(func() {
		if hadOriginal {
			os.Setenv("KUBERNETES_SERVICE_HOST", original)
		} else {
			os.Unsetenv("KUBERNETES_SERVICE_HOST")
		}
	})

	os.Unsetenv("KUBERNETES_SERVICE_HOST")
	if isInKubernetesPod() {
		t.Errorf("expected false with KUBERNETES_SERVICE_HOST unset")
	}

	os.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
	if !isInKubernetesPod() {
		t.Errorf("expected true with KUBERNETES_SERVICE_HOST set")
	}
}
