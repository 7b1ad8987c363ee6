// Package container reports whether the gateway process is running inside
// a container, so the startup log line can tell a "docker run" deployment
// apart from a developer running pigate straight off their machine.
package container

import (
	"os"
	"strings"
)

// dockerEnvMarker is the sentinel file the Docker runtime drops into every
// container's filesystem root.
const dockerEnvMarker = "/.dockerenv"

// cgroupSignals are substrings that show up in a containerised process's
// cgroup membership under most common runtimes.
var cgroupSignals = []string{"docker", "containerd", "kubepods"}

// IsContainerised reports whether the current process is likely running
// inside a container, checked via any of: the Docker marker file, a
// container-flavoured cgroup, or a Kubernetes-injected environment
// variable. A single positive signal is enough - containers rarely
// announce themselves through only one of these.
func IsContainerised() bool {
	for _, signal := range []func() bool{hasDockerEnvFile, isInContainerCGroup, isInKubernetesPod} {
		if signal() {
			return true
		}
	}
	return false
}

func hasDockerEnvFile() bool {
	_, err := os.Stat(dockerEnvMarker)
	return err == nil
}

// isInContainerCGroup inspects the init process's cgroup membership for
// runtime-specific substrings. It reads /proc/1/cgroup rather than the
// caller's own, since that file survives even when the process itself
// runs under a stripped-down PID namespace.
func isInContainerCGroup() bool {
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	content := string(data)
	for _, signal := range cgroupSignals {
		if strings.Contains(content, signal) {
			return true
		}
	}
	return false
}

// isInKubernetesPod checks for the environment variable every Kubernetes
// pod has injected into it regardless of container runtime.
func isInKubernetesPod() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}
